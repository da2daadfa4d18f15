package utils

import (
	"os"
	"path/filepath"

	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
	. "gopkg.in/check.v1"
)

type ConfigSuite struct {
	config ConfigStructure
}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) SetUpTest(c *C) {
	s.config = Config
}

func writeFile(c *C, name, content string) string {
	filename := filepath.Join(c.MkDir(), name)
	c.Assert(os.WriteFile(filename, []byte(content), 0644), IsNil)
	return filename
}

func (s *ConfigSuite) TestLoadConfigJSON(c *C) {
	err := LoadConfig(writeFile(c, "ppm.conf", configFile), &s.config)
	c.Assert(err, IsNil)
	c.Check(s.config.WordLength, Equals, uint(24))
	c.Check(s.config.Mode, Equals, "bit")
	c.Check(s.config.MaxContextOrder, Equals, 4)
	c.Check(s.config.LogFormat, Equals, "json")
	c.Check(s.config.ShowProgress, Equals, false)
	// Fields missing from the file keep their defaults.
	c.Check(s.config.LogLevel, Equals, "info")
}

func (s *ConfigSuite) TestLoadConfigYAML(c *C) {
	err := LoadConfig(writeFile(c, "ppm.yaml", configFileYAML), &s.config)
	c.Assert(err, IsNil)
	c.Check(s.config.WordLength, Equals, uint(12))
	c.Check(s.config.Mode, Equals, "B")
	c.Check(s.config.MaxContextOrder, Equals, 3)
	c.Check(s.config.LogLevel, Equals, "debug")
}

func (s *ConfigSuite) TestLoadConfigErrors(c *C) {
	err := LoadConfig(filepath.Join(c.MkDir(), "missing.conf"), &s.config)
	c.Check(os.IsNotExist(err), Equals, true)

	err = LoadConfig(writeFile(c, "bad.conf", "{\"wordLength\": [}"), &s.config)
	c.Check(err, ErrorMatches, "invalid yaml .* or json .*")
}

func (s *ConfigSuite) TestSaveConfig(c *C) {
	filename := filepath.Join(c.MkDir(), "ppm.conf")

	s.config.WordLength = 20
	s.config.Mode = "b"
	s.config.ShowProgress = false
	c.Assert(SaveConfig(filename, &s.config), IsNil)

	var loaded ConfigStructure
	c.Assert(LoadConfig(filename, &loaded), IsNil)
	c.Check(loaded, DeepEquals, s.config)

	buf, err := os.ReadFile(filename)
	c.Assert(err, IsNil)
	c.Check(string(buf), Equals, ""+
		"{\n"+
		"  \"wordLength\": 20,\n"+
		"  \"mode\": \"b\",\n"+
		"  \"maxContextOrder\": 2,\n"+
		"  \"logLevel\": \"info\",\n"+
		"  \"logFormat\": \"default\",\n"+
		"  \"showProgress\": false\n"+
		"}")
}

func (s *ConfigSuite) TestValidate(c *C) {
	mode, err := s.config.Validate()
	c.Assert(err, IsNil)
	c.Check(mode, Equals, ac.Byte)

	s.config.Mode = "bit"
	mode, err = s.config.Validate()
	c.Assert(err, IsNil)
	c.Check(mode, Equals, ac.Bit)

	s.config.WordLength = 33
	_, err = s.config.Validate()
	c.Check(errors.Cause(err), Equals, ac.ErrWordLength)

	s.config.WordLength = 16
	s.config.Mode = "nibble"
	_, err = s.config.Validate()
	c.Check(err, NotNil)

	s.config.Mode = "B"
	s.config.MaxContextOrder = -1
	_, err = s.config.Validate()
	c.Check(err, NotNil)
}

func (s *ConfigSuite) TestConfigLocations(c *C) {
	locations := ConfigLocations()
	c.Assert(locations, HasLen, 2)
	c.Check(filepath.Base(locations[0]), Equals, ".ppm.conf")
	c.Check(locations[1], Equals, "/etc/ppm.conf")
}

const configFile = `{
	// register width in bits
	"wordLength": 24,
	"mode": "bit",
	"maxContextOrder": 4,
	/* machine readable output */
	"logFormat": "json",
	"showProgress": false,
}`

const configFileYAML = `word_length: 12
mode: B
max_context_order: 3
log_level: debug
`
