package main

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	config "github.com/avatarctic/profile-lookup/configs"
	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
)

var outputJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func newLookupCmd() *cobra.Command {
	lookup := &cobra.Command{
		Use:   "lookup",
		Short: "Run a single lookup against the configured providers and print the result.",
	}

	profileCmd := &cobra.Command{
		Use:          "profile <handle>",
		Short:        "Look up an Instagram profile by handle.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := lookupServicesFromEnv()
			if err != nil {
				return err
			}
			p, err := svcs.profiles.LookupProfile(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile.LookupResponse{Success: true, Profile: p})
		},
	}

	var countryCode string
	photoCmd := &cobra.Command{
		Use:          "photo <phone>",
		Short:        "Look up a WhatsApp profile photo by phone number.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := lookupServicesFromEnv()
			if err != nil {
				return err
			}
			res, err := svcs.photos.LookupPhoto(commandContext(cmd), args[0], countryCode)
			if err != nil {
				return err
			}
			private := res.Photo.IsPrivate
			return printJSON(cmd.OutOrStdout(), profile.LookupResponse{Success: true, Result: res.Photo.URL, IsPhotoPrivate: &private})
		},
	}
	photoCmd.Flags().StringVar(&countryCode, "country-code", "", "country calling code prepended to the number")

	lookup.AddCommand(profileCmd, photoCmd)
	return lookup
}

func lookupServicesFromEnv() (*lookupServices, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return buildLookupServices(cfg, nil, newLogger(&cfg.Log))
}

func commandContext(cmd *cobra.Command) context.Context {
	return contextOrBackground(cmd.Context())
}

func printJSON(w io.Writer, v any) error {
	b, err := outputJSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
