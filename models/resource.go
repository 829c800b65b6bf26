// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResourceKind is the discriminator of a polymorphic reference. The set of
// kinds is closed; every switch over it must handle all values.
type ResourceKind string

const (
	ResourceItem     ResourceKind = "item"
	ResourceBox      ResourceKind = "box"
	ResourceLocation ResourceKind = "location"
	ResourceUser     ResourceKind = "user"
)

// DeepLinkScheme is the custom URI scheme resolved by the clients.
const DeepLinkScheme = "sortr"

var (
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrInvalidDeepLink     = errors.New("invalid deep link")
)

// Valid reports whether k is one of the known kinds.
func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceItem, ResourceBox, ResourceLocation, ResourceUser:
		return true
	}
	return false
}

// Shareable reports whether k may be the target of a share, notification
// or comment. Users are only ever activity subjects.
func (k ResourceKind) Shareable() bool {
	switch k {
	case ResourceItem, ResourceBox, ResourceLocation:
		return true
	case ResourceUser:
		return false
	}
	return false
}

func (k ResourceKind) String() string {
	return string(k)
}

// ParseResourceKind converts s into a [ResourceKind]. Plural forms used in
// REST paths ("items", "boxes", "locations", "users") are accepted too.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "item", "items":
		return ResourceItem, nil
	case "box", "boxes":
		return ResourceBox, nil
	case "location", "locations":
		return ResourceLocation, nil
	case "user", "users":
		return ResourceUser, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
}

// ResourceRef is a tagged reference to an item, box, location or user.
// Embedded into Share, Notification and Comment, its fields are promoted
// to the wire names resourceType / resourceId.
type ResourceRef struct {
	Kind ResourceKind `json:"resourceType" validate:"required,resource_kind"`
	ID   int64        `json:"resourceId" validate:"required,gt=0"`
}

// NewResourceRef builds a reference, failing on an unknown kind or a
// non-positive id.
func NewResourceRef(kind ResourceKind, id int64) (ResourceRef, error) {
	if !kind.Valid() {
		return ResourceRef{}, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	if id <= 0 {
		return ResourceRef{}, fmt.Errorf("invalid %s id %d", kind, id)
	}
	return ResourceRef{Kind: kind, ID: id}, nil
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s %d", r.Kind, r.ID)
}

// DeepLink renders the custom-scheme URI clients resolve to a detail view,
// e.g. sortr://box/7.
func (r ResourceRef) DeepLink() string {
	return fmt.Sprintf("%s://%s/%d", DeepLinkScheme, r.Kind, r.ID)
}

// WebLink renders the HTTPS equivalent of [ResourceRef.DeepLink] under baseURL.
func (r ResourceRef) WebLink(baseURL string) string {
	return fmt.Sprintf("%s/%s/%d", strings.TrimRight(baseURL, "/"), r.Kind, r.ID)
}

// ParseDeepLink resolves either a sortr:// URI or an http(s) URL whose path
// ends in /{kind}/{id}. User references are not linkable.
func ParseDeepLink(raw string) (ResourceRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ResourceRef{}, fmt.Errorf("%w: %w", ErrInvalidDeepLink, err)
	}

	var segments []string
	switch u.Scheme {
	case DeepLinkScheme:
		// sortr://item/5 parses with Host "item" and Path "/5"
		segments = append([]string{u.Host}, splitPath(u.Path)...)
	case "http", "https":
		segments = splitPath(u.Path)
	default:
		return ResourceRef{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidDeepLink, u.Scheme)
	}

	if len(segments) < 2 {
		return ResourceRef{}, fmt.Errorf("%w: %q", ErrInvalidDeepLink, raw)
	}
	kindPart, idPart := segments[len(segments)-2], segments[len(segments)-1]

	kind, err := ParseResourceKind(kindPart)
	if err != nil || !kind.Shareable() {
		return ResourceRef{}, fmt.Errorf("%w: %q", ErrInvalidDeepLink, raw)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return ResourceRef{}, fmt.Errorf("%w: bad id in %q", ErrInvalidDeepLink, raw)
	}

	return ResourceRef{Kind: kind, ID: id}, nil
}

func splitPath(p string) []string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
