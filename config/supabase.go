package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient builds a Supabase client from the storage section.
func NewSupabaseClient(cfg StorageConfig) (*supa.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("error initializing Supabase client: %w", err)
	}

	if Log != nil {
		Log.WithField("url", cfg.SupabaseURL).Info("Supabase client initialized successfully.")
	}
	return client, nil
}
