// Package routes defines the console's route tables.
//
// Two variants exist. Classic serves the sensor dashboard, the book list
// and the ping page; Gallery adds the photo gallery.
package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iot-manager/console/pkg/routetable"
	"github.com/iot-manager/console/pkg/views"
)

// Route names, used for lookup-by-name navigation.
const (
	NameSensorData   = "Sensor Data"
	NameBooks        = "Books"
	NamePing         = "ping"
	NamePhotoGallery = "Photo Gallery"
)

// Route paths.
const (
	PathSensorData   = "/"
	PathBooks        = "/books"
	PathPing         = "/ping"
	PathPhotoGallery = "/photos"
)

// Variant selects a route table.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantGallery Variant = "gallery"
)

// DefaultVariant is the variant used when none is configured.
const DefaultVariant = VariantGallery

// ErrUnknownVariant is returned by ParseVariant for an unrecognized name.
var ErrUnknownVariant = errors.New("unknown route variant")

// Variants lists the known variants.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantGallery}
}

// ParseVariant parses a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantClassic, VariantGallery:
		return v, nil
	case "":
		return DefaultVariant, nil
	default:
		return "", fmt.Errorf("%w %q (want %s or %s)", ErrUnknownVariant, s, VariantClassic, VariantGallery)
	}
}

func classicEntries(v *views.Set) []routetable.Entry {
	return []routetable.Entry{
		{Path: PathSensorData, Name: NameSensorData, View: v.SensorData},
		{Path: PathBooks, Name: NameBooks, View: v.Books},
		{Path: PathPing, Name: NamePing, View: v.Ping},
	}
}

// Classic builds the table without the photo gallery.
func Classic(v *views.Set) (*routetable.Table, error) {
	return routetable.New(classicEntries(v)...)
}

// Gallery builds the table with the photo gallery.
func Gallery(v *views.Set) (*routetable.Table, error) {
	entries := append(classicEntries(v),
		routetable.Entry{Path: PathPhotoGallery, Name: NamePhotoGallery, View: v.PhotoGallery},
	)
	return routetable.New(entries...)
}

// Build returns the table for variant.
func Build(variant Variant, v *views.Set) (*routetable.Table, error) {
	switch variant {
	case VariantClassic:
		return Classic(v)
	case VariantGallery:
		return Gallery(v)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
	}
}
