package model

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/datatypes"
)

// StringList is a sequence of strings persisted as JSON text.
type StringList []string

// Value encodes nil and empty lists alike as "[]". The result is always a
// string so text columns accept it on every driver.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	v, err := datatypes.JSONSlice[string](l).Value()
	if err != nil {
		return nil, fmt.Errorf("encode string list: %w", err)
	}
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return v, nil
}

// Scan accepts the text as string or []byte. NULL decodes to an empty list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var s datatypes.JSONSlice[string]
	if err := s.Scan(value); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	if s == nil {
		s = datatypes.JSONSlice[string]{}
	}
	*l = StringList(s)
	return nil
}

// EncodeStrings returns the storage text of values.
func EncodeStrings(values []string) (string, error) {
	v, err := StringList(values).Value()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("encode string list: unexpected driver value %T", v)
	}
	return s, nil
}

// DecodeStrings parses text produced by EncodeStrings.
func DecodeStrings(text string) ([]string, error) {
	var l StringList
	if err := l.Scan(text); err != nil {
		return nil, err
	}
	return l, nil
}
