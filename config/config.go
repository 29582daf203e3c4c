package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/Hakuto4838/SkipListSet/run.schema.json"

// runSchema 限制 benchrun 設定檔的欄位與範圍
const runSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "impls":    {"type": "array", "items": {"enum": ["tower", "basic"]}, "minItems": 1, "uniqueItems": true},
    "coin":     {"enum": ["random", "fast"]},
    "runs":     {"type": "integer", "minimum": 1},
    "seed":     {"type": "integer", "minimum": 0},
    "maxLevel": {"type": "integer", "minimum": 1, "maximum": 64},
    "files":    {"type": "array", "items": {"type": "string", "minLength": 1}}
  }
}`

// Config 是 benchrun 的設定
type Config struct {
	Impls    []string `json:"impls"`
	Coin     string   `json:"coin"`
	Runs     int      `json:"runs"`
	Seed     uint64   `json:"seed"`
	MaxLevel int      `json:"maxLevel"`
	Files    []string `json:"files"`
}

// Default 回傳預設設定
func Default() *Config {
	return &Config{
		Impls:    []string{"tower", "basic"},
		Coin:     "random",
		Runs:     5,
		MaxLevel: 32,
	}
}

var schema = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(runSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(schemaURL)
}

// Parse 驗證 JSON 後覆蓋到預設設定上，未出現的欄位維持預設值
func Parse(data []byte) (*Config, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return cfg, nil
}

// Load 讀取並驗證設定檔
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}
