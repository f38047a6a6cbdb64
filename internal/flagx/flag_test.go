package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "localhost:10009", "-x", "nope"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:10009"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a=addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-a", "-b", "val"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "addr"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestStripArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		known []string
		want  []string
	}{
		{
			name:  "positional after flags",
			args:  []string{"-a", "localhost:10009", "getinfo", `{"x":1}`},
			known: []string{"-a"},
			want:  []string{"getinfo", `{"x":1}`},
		},
		{
			name:  "equals form removed whole",
			args:  []string{"--config=conf.json", "getinfo"},
			known: []string{"--config"},
			want:  []string{"getinfo"},
		},
		{
			name:  "unknown boolean flag removed alone",
			args:  []string{"-v", "getinfo"},
			known: []string{"-a"},
			want:  []string{"getinfo"},
		},
		{
			name:  "no positionals",
			args:  []string{"-a", "addr"},
			known: []string{"-a"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripArgs(tt.args, tt.known))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "conf.json"}
		assert.Equal(t, "conf.json", JsonConfigFlags())
	})

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "short.json"}
		assert.Equal(t, "short.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"testbin"}
		assert.Equal(t, "", JsonConfigFlags())
	})
}
