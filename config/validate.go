package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/key"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrMissingValue = errors.New("value is required")
	ErrInvalidValue = errors.New("invalid value")
)

// checks holds the constraints of keys whose type alone does not describe them.
var checks = map[string]func(v any) error{
	key.APIBaseURL: func(v any) error {
		u, err := url.Parse(v.(string))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%q is not an http(s) address", v)
		}
		return nil
	},
	key.APITimeout: func(v any) error {
		if v.(int) <= 0 {
			return fmt.Errorf("%d is not a positive number of seconds", v)
		}
		return nil
	},
	key.TUIItemSpacing: func(v any) error {
		if v.(int) < 0 {
			return fmt.Errorf("%d is negative", v)
		}
		return nil
	},
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
	key.IconsVariant: func(v any) error {
		if !slices.Contains(icon.AvailableVariants(), v.(string)) {
			return fmt.Errorf("%q is not one of %s", v, strings.Join(icon.AvailableVariants(), ", "))
		}
		return nil
	},
}

// Parse converts raw command-line values into the typed value of the key
// and checks it.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	if len(raw) == 0 {
		return nil, ErrMissingValue
	}

	var (
		v   any
		err error
	)
	switch field.Value.(type) {
	case string:
		v = strings.TrimSpace(raw[0])
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		err = fmt.Errorf("unsupported type %T", field.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrInvalidValue, k, err)
	}

	if check, ok := checks[k]; ok {
		if err := check(v); err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrInvalidValue, k, err)
		}
	}
	return v, nil
}

// Section returns the group a key belongs to, e.g. "api" for api.base_url.
func Section(k string) string {
	section, _, _ := strings.Cut(k, ".")
	return section
}

// Sections groups the registered fields by section, both sorted.
func Sections() map[string][]Field {
	grouped := lo.GroupBy(lo.Values(Default), func(f Field) string {
		return Section(f.Key)
	})
	for _, fields := range grouped {
		slices.SortFunc(fields, func(a, b Field) int {
			return strings.Compare(a.Key, b.Key)
		})
	}
	return grouped
}
