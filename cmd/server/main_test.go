package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
}

func TestBootstrap_RequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "secret")
	_, _, err := bootstrap()
	assert.EqualError(t, err, "JWT_SECRET environment variable is required")

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "")
	_, _, err = bootstrap()
	assert.EqualError(t, err, "DB_PASSWORD environment variable is required")
}
