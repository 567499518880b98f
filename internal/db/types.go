package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocalizedText maps a language code to text, stored as a jsonb object
// such as {"en": "News", "bn": "সংবাদ"}.
type LocalizedText map[string]string

// Get returns the text for lang, or for fallback when lang is missing or empty.
func (t LocalizedText) Get(lang, fallback string) string {
	if v := t[lang]; v != "" {
		return v
	}
	return t[fallback]
}

// Scan implements sql.Scanner
func (t *LocalizedText) Scan(src interface{}) error {
	if t == nil {
		return fmt.Errorf("dbtypes: Scan on nil *LocalizedText")
	}
	if src == nil {
		*t = LocalizedText{}
		return nil
	}
	b, err := jsonBytes(src, "LocalizedText")
	if err != nil {
		return err
	}
	out := LocalizedText{}
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*t = out
	return nil
}

// Value implements driver.Valuer
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonBytes(src interface{}, name string) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("dbtypes: cannot scan type %T into %s", src, name)
	}
}
