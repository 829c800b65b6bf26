package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

const maxImportRows = 10000

var exportHeader = []string{"id", "name", "description", "category", "quantity", "boxId", "boxName", "locationName", "link"}

type transferService struct {
	tx         store.Transactor
	locations  store.LocationRepository
	boxes      store.BoxRepository
	items      store.ItemRepository
	categories store.CategoryRepository
	activities ActivityService
	validator  validators.Validator
	baseURL    string
	logger     *logger.Logger
}

func NewTransferService(repos *store.Repositories, activities ActivityService, validator validators.Validator, cfg config.App, logger *logger.Logger) TransferService {
	return &transferService{
		tx:         repos.Transactor,
		locations:  repos.Locations,
		boxes:      repos.Boxes,
		items:      repos.Items,
		categories: repos.Categories,
		activities: activities,
		validator:  validator,
		baseURL:    cfg.PublicBaseURL,
		logger:     logger,
	}
}

// ExportItemsCSV writes every item with its box and location names.
func (s *transferService) ExportItemsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.items.ListItemsForExport(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write(exportHeader); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, r := range rows {
		boxID := ""
		if r.BoxID != nil {
			boxID = strconv.FormatInt(*r.BoxID, 10)
		}
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Description,
			r.Category,
			strconv.Itoa(r.Quantity),
			boxID,
			r.BoxName,
			r.LocationName,
			s.link(r.Ref()),
		}
		if err = cw.Write(record); err != nil {
			return fmt.Errorf("error writing csv row %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *transferService) link(ref models.ResourceRef) string {
	if s.baseURL != "" {
		return ref.WebLink(s.baseURL)
	}
	return ref.DeepLink()
}

// PreviewImport parses and validates a CSV without writing anything.
func (s *transferService) PreviewImport(ctx context.Context, r io.Reader) (models.ImportPreview, error) {
	rows, err := s.parseCSV(r)
	if err != nil {
		return models.ImportPreview{}, err
	}

	boxes, err := s.boxes.ListAllBoxes(ctx)
	if err != nil {
		return models.ImportPreview{}, err
	}
	boxIDs := make(map[int64]bool, len(boxes))
	for _, b := range boxes {
		boxIDs[b.ID] = true
	}

	preview := models.ImportPreview{
		Rows:   make([]models.ImportRow, 0, len(rows)),
		Errors: make([]models.ImportRowError, 0),
		Total:  len(rows),
	}
	for _, pr := range rows {
		fields := pr.errs
		if err = s.validator.Validate(ctx, pr.row); err != nil {
			var verr *validators.ValidationError
			if !errors.As(err, &verr) {
				return models.ImportPreview{}, err
			}
			fields = append(fields, verr.Fields...)
		}
		if pr.row.BoxID != nil && !boxIDs[*pr.row.BoxID] {
			fields = append(fields, models.FieldError{
				Field:   "boxId",
				Rule:    "exists",
				Message: fmt.Sprintf("box %d not found", *pr.row.BoxID),
			})
		}

		if len(fields) > 0 {
			preview.Errors = append(preview.Errors, models.ImportRowError{Line: pr.row.Line, Fields: fields})
			continue
		}
		preview.Rows = append(preview.Rows, pr.row)
	}
	preview.Valid = len(preview.Rows)

	return preview, nil
}

// Import creates the valid rows of a CSV in one transaction and skips the
// rest, reporting why.
func (s *transferService) Import(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	preview, err := s.PreviewImport(ctx, r)
	if err != nil {
		return models.ImportResult{}, err
	}

	result := models.ImportResult{Skipped: len(preview.Errors), Errors: preview.Errors}
	if len(preview.Rows) == 0 {
		return result, nil
	}

	items := make([]models.Item, 0, len(preview.Rows))
	for _, row := range preview.Rows {
		items = append(items, row.Item())
	}

	var created []models.Item
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err = s.items.CreateItems(ctx, items)
		if errors.Is(err, store.ErrReferenceNotFound) {
			return validators.NewValidationError(models.FieldError{Field: "boxId", Rule: "exists", Message: "a referenced box was removed during import"})
		}
		return err
	})
	if err != nil {
		return models.ImportResult{}, err
	}

	result.Created = len(created)
	s.recordBulk(ctx, models.ResourceItem, itemEntities(created))

	return result, nil
}

type parsedRow struct {
	row  models.ImportRow
	errs []models.FieldError
}

func (s *transferService) parseCSV(r io.Reader) ([]parsedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, validators.NewValidationError(models.FieldError{Field: "file", Rule: "required", Message: "csv is empty"})
	}
	if err != nil {
		return nil, csvError(err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, validators.NewValidationError(models.FieldError{Field: "file", Rule: "header", Message: "csv header must contain a name column"})
	}

	var rows []parsedRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if len(rows) == maxImportRows {
			return nil, validators.NewValidationError(models.FieldError{
				Field:   "file",
				Rule:    "max",
				Message: fmt.Sprintf("at most %d rows can be imported at once", maxImportRows),
			})
		}
		rows = append(rows, parseRecord(line, record, columns))
	}

	return rows, nil
}

func parseRecord(line int, record []string, columns map[string]int) parsedRow {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	pr := parsedRow{row: models.ImportRow{
		Line:        line,
		Name:        get("name"),
		Description: get("description"),
		Category:    get("category"),
		Quantity:    defaultItemQuantity,
	}}

	if q := get("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			pr.errs = append(pr.errs, models.FieldError{Field: "quantity", Rule: "integer", Message: fmt.Sprintf("%q is not a whole number", q)})
		} else {
			pr.row.Quantity = n
		}
	}

	if b := get("boxid"); b != "" {
		id, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			pr.errs = append(pr.errs, models.FieldError{Field: "boxId", Rule: "integer", Message: fmt.Sprintf("%q is not a box id", b)})
		} else {
			pr.row.BoxID = &id
		}
	}

	return pr
}

func csvError(err error) error {
	return validators.NewValidationError(models.FieldError{Field: "file", Rule: "csv", Message: err.Error()})
}

func (s *transferService) Backup(ctx context.Context) (models.Backup, error) {
	backup := models.Backup{Version: models.BackupVersion, ExportedAt: time.Now().UTC()}

	var err error
	if backup.Locations, err = s.locations.ListAllLocations(ctx); err != nil {
		return models.Backup{}, err
	}
	if backup.Boxes, err = s.boxes.ListAllBoxes(ctx); err != nil {
		return models.Backup{}, err
	}
	if backup.Items, err = s.items.ListAllItems(ctx); err != nil {
		return models.Backup{}, err
	}
	if backup.Categories, err = s.categories.ListCategories(ctx); err != nil {
		return models.Backup{}, err
	}

	return backup, nil
}

// Restore inserts the backup's records in one transaction. Ids are remapped;
// parents are created before their children. Items whose box is not part of
// the backup are restored without a box. Categories that already exist are
// skipped.
func (s *transferService) Restore(ctx context.Context, backup models.Backup) (models.RestoreResult, error) {
	if backup.Version != models.BackupVersion {
		return models.RestoreResult{}, validators.NewValidationError(models.FieldError{
			Field:   "version",
			Rule:    "eq",
			Message: fmt.Sprintf("unsupported backup version %d", backup.Version),
		})
	}

	var (
		result    models.RestoreResult
		locations []models.Location
		boxes     []models.Box
		items     []models.Item
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if result.Categories, err = s.restoreCategories(ctx, backup.Categories); err != nil {
			return err
		}

		locationIDs := make(map[int64]int64, len(backup.Locations))
		if locations, err = s.restoreLocations(ctx, backup.Locations, locationIDs); err != nil {
			return err
		}

		boxIDs := make(map[int64]int64, len(backup.Boxes))
		for i, b := range backup.Boxes {
			locationID, ok := locationIDs[b.LocationID]
			if !ok {
				return validators.NewValidationError(models.FieldError{
					Field:   fmt.Sprintf("boxes[%d].locationId", i),
					Rule:    "exists",
					Message: fmt.Sprintf("location %d is not part of the backup", b.LocationID),
				})
			}
			created, err := s.boxes.CreateBox(ctx, models.Box{Name: b.Name, Description: b.Description, LocationID: locationID})
			if err != nil {
				return err
			}
			boxIDs[b.ID] = created.ID
			boxes = append(boxes, created)
		}

		toCreate := make([]models.Item, 0, len(backup.Items))
		for _, it := range backup.Items {
			item := models.Item{Name: it.Name, Description: it.Description, Category: it.Category, Quantity: it.Quantity}
			if it.BoxID != nil {
				if id, ok := boxIDs[*it.BoxID]; ok {
					item.BoxID = &id
				}
			}
			toCreate = append(toCreate, item)
		}
		if len(toCreate) > 0 {
			if items, err = s.items.CreateItems(ctx, toCreate); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.RestoreResult{}, fmt.Errorf("%w: %w", ErrDuplicateName, err)
	}
	if err != nil {
		return models.RestoreResult{}, err
	}

	result.Locations, result.Boxes, result.Items = len(locations), len(boxes), len(items)

	s.recordBulk(ctx, models.ResourceLocation, locationEntities(locations))
	s.recordBulk(ctx, models.ResourceBox, boxEntities(boxes))
	s.recordBulk(ctx, models.ResourceItem, itemEntities(items))

	return result, nil
}

func (s *transferService) restoreCategories(ctx context.Context, categories []models.Category) (int, error) {
	existing, err := s.categories.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[strings.ToLower(c.Name)] = true
	}

	created := 0
	for _, c := range categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" || names[key] {
			continue
		}
		if _, err = s.categories.CreateCategory(ctx, models.Category{Name: strings.TrimSpace(c.Name)}); err != nil {
			return 0, err
		}
		names[key] = true
		created++
	}
	return created, nil
}

// restoreLocations creates locations whose parent is already created, pass
// after pass. Locations left over (missing parent or a cycle) become roots.
func (s *transferService) restoreLocations(ctx context.Context, backup []models.Location, ids map[int64]int64) ([]models.Location, error) {
	inBackup := make(map[int64]bool, len(backup))
	for _, l := range backup {
		inBackup[l.ID] = true
	}

	created := make([]models.Location, 0, len(backup))
	pending := backup
	for len(pending) > 0 {
		var next []models.Location
		for _, l := range pending {
			var parentID *int64
			if l.ParentID != nil && inBackup[*l.ParentID] {
				id, ok := ids[*l.ParentID]
				if !ok {
					next = append(next, l)
					continue
				}
				parentID = &id
			}

			c, err := s.locations.CreateLocation(ctx, models.Location{Name: l.Name, ParentID: parentID})
			if err != nil {
				return nil, err
			}
			ids[l.ID] = c.ID
			created = append(created, c)
		}

		if len(next) == len(pending) {
			for i := range next {
				next[i].ParentID = nil
			}
			inBackup = map[int64]bool{}
		}
		pending = next
	}

	return created, nil
}

func (s *transferService) recordBulk(ctx context.Context, kind models.ResourceKind, entities []models.ActivityEntity) {
	if len(entities) == 0 {
		return
	}
	_, err := s.activities.RecordBulk(context.WithoutCancel(ctx), models.Activity{Action: models.ActionCreate, EntityType: kind}, entities)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*transferService.recordBulk").Msg("bulk activity not recorded")
	}
}

func itemEntities(items []models.Item) []models.ActivityEntity {
	out := make([]models.ActivityEntity, 0, len(items))
	for _, i := range items {
		out = append(out, models.ActivityEntity{ID: int64Ref(i.ID), Name: i.Name})
	}
	return out
}

func boxEntities(boxes []models.Box) []models.ActivityEntity {
	out := make([]models.ActivityEntity, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, models.ActivityEntity{ID: int64Ref(b.ID), Name: b.Name})
	}
	return out
}

func locationEntities(locations []models.Location) []models.ActivityEntity {
	out := make([]models.ActivityEntity, 0, len(locations))
	for _, l := range locations {
		out = append(out, models.ActivityEntity{ID: int64Ref(l.ID), Name: l.Name})
	}
	return out
}
