package config

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	discard := log.New(ioutil.Discard, "", 0)

	cfg, err := Initialize(fsys, "/home/user", discard)
	if err != nil {
		t.Fatal(err)
	}
	assert.NotNil(t, cfg)

	// Check that the config loads back and is valid.
	loaded, err := Load(fsys, "/home/user")
	if err != nil {
		t.Fatal(err)
	}
	assert.Nil(t, loaded.Validate())

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := loaded.OpenAppLog()
		assert.Nil(t, err)
		assert.NotNil(t, fd)
		fd.Close()
	})

	t.Run("ReadAppLog", func(t *testing.T) {
		fd, err := loaded.ReadAppLog()
		assert.Nil(t, err)
		fd.Close()
	})
}

func TestInitializeRefusesToClobber(t *testing.T) {
	fsys := afero.NewMemMapFs()
	discard := log.New(ioutil.Discard, "", 0)

	if _, err := Initialize(fsys, "/cfg", discard); err != nil {
		t.Fatal(err)
	}

	_, err := Initialize(fsys, "/cfg", discard)
	assert.Error(t, err)
}

func TestLoadAcceptsConfigFilePath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	discard := log.New(ioutil.Discard, "", 0)

	if _, err := Initialize(fsys, "/cfg", discard); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fsys, "/cfg/"+ConfigurationName)
	assert.Nil(t, err)
	assert.NotNil(t, cfg)
}
