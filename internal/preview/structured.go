package preview

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// structure parses the document and reduces it to a summary.
func (p *Previewer) structure(class Class, data []byte) (*Structure, error) {
	switch class {
	case ClassJSON:
		var v interface{}
		if err := sonic.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return describe("json", v), nil
	case ClassYAML:
		var v interface{}
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return describe("yaml", v), nil
	case ClassTOML:
		var v map[string]interface{}
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return describe("toml", v), nil
	case ClassCSV:
		return csvStructure(data)
	default:
		return nil, fmt.Errorf("no structure for class %s", class)
	}
}

// describe reduces a decoded document to its top-level shape.
func describe(format string, v interface{}) *Structure {
	st := &Structure{Format: format}
	switch doc := v.(type) {
	case map[string]interface{}:
		st.Keys = make([]string, 0, len(doc))
		for k := range doc {
			st.Keys = append(st.Keys, k)
		}
		sort.Strings(st.Keys)
		st.Items = len(doc)
	case []interface{}:
		st.Items = len(doc)
	default:
		st.Items = 1
	}
	return st
}

// csvStructure reads the header row and counts data rows. Ragged rows are
// tolerated.
func csvStructure(data []byte) (*Structure, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	st := &Structure{Format: "csv"}
	if len(records) == 0 {
		return st, nil
	}
	st.Columns = records[0]
	st.Items = len(records) - 1
	return st, nil
}
