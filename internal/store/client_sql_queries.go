package store

const (
	upsertCredential = `INSERT INTO credentials (id, sealed, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET sealed = excluded.sealed, updated_at = excluded.updated_at;`

	selectCredential = `SELECT sealed FROM credentials WHERE id = 1;`

	deleteCredential = `DELETE FROM credentials;`

	selectSetting = `SELECT value FROM settings WHERE key = ?;`

	upsertSetting = `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	deleteSetting = `DELETE FROM settings WHERE key = ?;`
)
