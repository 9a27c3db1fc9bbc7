package backend

import (
	"context"
	"encoding/json"

	apperr "askdb/cli/internal/errors"
)

// DBConfig is the database settings form. All fields travel as strings.
type DBConfig struct {
	UserEmail   string `json:"user_email"`
	DBType      string `json:"db_type"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBUserName  string `json:"db_user_name"`
	DBPassword  string `json:"db_password"`
	DBDatabase  string `json:"db_database"`
	DBTableName string `json:"db_table_name"`
}

// SaveDBConfig posts the settings form to the db_config endpoint.
func (h *HTTP) SaveDBConfig(ctx context.Context, cfg DBConfig) (string, error) {
	env, err := h.postJSON(ctx, h.m.HTTP.DBConfig, cfg)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.failure()
	}
	return env.Message, nil
}

// ListDBConfigs fetches stored settings from the db_config endpoint.
func (h *HTTP) ListDBConfigs(ctx context.Context) ([]DBConfig, error) {
	env, err := h.getJSON(ctx, h.m.HTTP.DBConfig)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.failure()
	}
	if !isJSONArray(env.Data) {
		return nil, nil
	}
	var out []DBConfig
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, apperr.Wrap(apperr.Application, "unexpected db_config list format", err)
	}
	return out, nil
}
