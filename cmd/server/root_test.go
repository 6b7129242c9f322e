package main

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/profile-lookup/configs"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	cmd, _, err := root.Find([]string{"lookup", "photo"})
	require.NoError(t, err)
	assert.Equal(t, "photo <phone>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("country-code"))

	cmd, _, err = root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Use)
}

func TestLookupProfile_RequiresHandle(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"lookup", "profile"})
	assert.Error(t, root.Execute())
}

func TestNewLogger_Format(t *testing.T) {
	l := newLogger(&config.LogConfig{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, ok := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)

	l = newLogger(&config.LogConfig{Level: "bogus", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, ok = l.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestBuildLookupServices(t *testing.T) {
	cfg := &config.Config{
		Instagram: config.ProviderConfig{APIKey: "k"},
		WhatsApp:  config.ProviderConfig{APIKey: "k"},
		Cache:     config.CacheConfig{Capacity: 5, ProfileTTL: 1, PhotoTTL: 1},
	}
	svcs, err := buildLookupServices(cfg, nil, logrus.New())
	require.NoError(t, err)
	assert.NotNil(t, svcs.profiles)
	assert.NotNil(t, svcs.photos)
	assert.Len(t, svcs.checkers, 2)
}
