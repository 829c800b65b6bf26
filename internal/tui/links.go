package tui

import "github.com/Comraich/sortr-sub001/models"

// linkRenderer renders the shareable link of a resource: an https link under
// the public base URL when one is configured, the sortr:// deep link
// otherwise.
type linkRenderer struct {
	baseURL string
}

func (l linkRenderer) render(ref models.ResourceRef) string {
	if l.baseURL != "" {
		return ref.WebLink(l.baseURL)
	}
	return ref.DeepLink()
}
