// configschema 生成 data/game_config.yaml 的 JSON Schema
//
// 用法:
//
//	go run ./cmd/configschema [-o data/game_config.schema.json]
//
// 不指定 -o 时输出到标准输出。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/invopop/jsonschema"
)

func main() {
	outPath := flag.String("o", "", "输出文件，为空时写到标准输出")
	flag.Parse()

	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configschema: marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "configschema: write schema: %v\n", err)
		os.Exit(1)
	}
}

// buildSchema 按 json 标签反射 GameConfig
// 所有字段都有默认值，所以没有必填项
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(config.GameConfig))
	schema.Title = "A'valanche Game Config"
	schema.Description = "Gameplay tuning loaded from data/game_config.yaml; omitted fields keep their defaults"
	return schema
}
