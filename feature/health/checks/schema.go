package checks

import (
	"fmt"
	"reflect"
	"strings"

	"fleetwash/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing a table with its gorm model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckSchema verifies that the table of model has every column declared in its gorm tags.
// Declared types are checked loosely: the actual type must contain the declared one.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	typ := reflect.TypeOf(model)
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", typ.Kind())
	}
	tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actual, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.Matched = false
		return report, nil
	}
	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		name := tagValue(tag, "column")
		if name == "" {
			continue
		}
		col, exists := byName[name]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, name)
			report.Matched = false
			continue
		}
		if want := strings.ToLower(tagValue(tag, "type")); want != "" && !strings.Contains(col.Type, want) {
			report.TypeMismatches = append(report.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", name, want, col.Type))
			report.Matched = false
		}
	}
	return report, nil
}

func tagValue(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
