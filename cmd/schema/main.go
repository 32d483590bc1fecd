package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"minifish/client"
)

// 生成线上协议载荷的 JSON Schema，供服务端侧校验与文档使用
func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

// wireCatalog 汇总所有会出现在信封 data 里的载荷类型
type wireCatalog struct {
	Welcome     client.WelcomeData     `json:"welcome"`
	WorldState  client.WorldStateData  `json:"world_state"`
	Player      client.PlayerData      `json:"player"`
	Fish        client.FishData        `json:"fish"`
	StateChange client.StateChangeData `json:"player_state_changed"`
	Face        client.FaceData        `json:"player_faced"`
	LineCasted  client.LineCastedData  `json:"line_casted"`
	LineRemoved client.LineRemovedData `json:"line_removed"`
	CastFailed  client.CastFailedData  `json:"cast_failed"`
	FishHooked  client.FishHookedData  `json:"fish_hooked"`
	HookAttempt client.HookAttemptData `json:"hook_attempt_update"`
	JoinGame    client.JoinGameData    `json:"join_game"`
	Move        client.MoveData        `json:"player_move"`
	StartCast   client.StartCastData   `json:"start_cast"`
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(wireCatalog))
	schema.Title = "minifish wire protocol"
	schema.Description = "Payload shapes carried in the {event, data} envelope"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
