// Package render maps sources to what the operator sees.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/source"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const (
	EmptyMessage   = constant.NoSources
	LoadingMessage = constant.LoadingSources
)

// Row is a source as displayed.
type Row struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Class  string `json:"class"`
}

// Status returns the label and class name for an activity flag.
func Status(active bool) (label, class string) {
	if active {
		return constant.StatusActive, constant.StatusClassActive
	}
	return constant.StatusInactive, constant.StatusClassInactive
}

// NewRow converts a source.
func NewRow(s source.Source) Row {
	status, class := Status(s.IsActive)
	return Row{
		ID:     s.ID,
		Name:   s.Name,
		Type:   s.Type.Upper(),
		URL:    s.URL,
		Status: status,
		Class:  class,
	}
}

// Rows converts sources, keeping their order.
func Rows(sources []source.Source) []Row {
	return lo.Map(sources, func(s source.Source, _ int) Row {
		return NewRow(s)
	})
}

// Text writes the loading line, the empty-state message or a table of sources.
func Text(w io.Writer, sources []source.Source, loading bool) error {
	switch {
	case loading:
		_, err := fmt.Fprintln(w, LoadingMessage)
		return err
	case len(sources) == 0:
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Type", "URL", "Status")
	for _, row := range Rows(sources) {
		if err := table.Append([]string{strconv.Itoa(row.ID), row.Name, row.Type, row.URL, row.Status}); err != nil {
			return err
		}
	}
	return table.Render()
}

// JSON writes the rows as an indented array. An empty list is written as [].
func JSON(w io.Writer, sources []source.Source) error {
	rows := Rows(sources)
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
