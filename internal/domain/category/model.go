package category

import (
	"errors"
	"fmt"
	"strings"
)

// Seeded category IDs.
const (
	WorkID    = "work"
	SportID   = "sport"
	LeisureID = "leisure"
	FamilyID  = "family"
	SleepID   = "sleep"
)

// DefaultColor is used when a new category has no color token.
const DefaultColor = "bg-indigo-500"

// Domain errors
var (
	ErrNotFound   = errors.New("category not found")
	ErrEmptyName  = errors.New("category name cannot be empty")
	ErrEmptyColor = errors.New("category color cannot be empty")
)

// Category is a named, colored tag grouping activities.
// Color is a UI class token such as "bg-blue-500", not a raw color value.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Defaults is the fixed seed set inserted on startup.
var Defaults = []Category{
	{ID: WorkID, Name: "Work", Color: "bg-blue-500"},
	{ID: SportID, Name: "Sport", Color: "bg-green-500"},
	{ID: LeisureID, Name: "Leisure", Color: "bg-purple-500"},
	{ID: FamilyID, Name: "Family", Color: "bg-red-500"},
	{ID: SleepID, Name: "Sleep", Color: "bg-black-500"},
}

// Validate checks if the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Color) == "" {
		return ErrEmptyColor
	}
	return nil
}

// SetDefaultColor applies DefaultColor when no token was given.
func (c *Category) SetDefaultColor() {
	if strings.TrimSpace(c.Color) == "" {
		c.Color = DefaultColor
	}
}

// IsSleep reports whether this is the special-cased sleep category.
func (c *Category) IsSleep() bool {
	return c.ID == SleepID
}

// palette maps the color name inside a "bg-<name>-500" token to RGB components.
var palette = map[string]string{
	"blue":   "59, 130, 246",
	"green":  "34, 197, 94",
	"purple": "168, 85, 247",
	"red":    "239, 68, 68",
	"indigo": "99, 102, 241",
	"black":  "0, 0, 0",
}

// fallbackRGB is used for tokens outside the palette.
const fallbackRGB = "107, 114, 128"

// RGBA substitutes a class token into a renderable rgba() color.
func RGBA(token string, opacity float64) string {
	name := strings.TrimPrefix(token, "bg-")
	if i := strings.LastIndex(name, "-"); i > 0 {
		name = name[:i]
	}
	rgb, ok := palette[name]
	if !ok {
		rgb = fallbackRGB
	}
	return fmt.Sprintf("rgba(%s, %g)", rgb, opacity)
}
