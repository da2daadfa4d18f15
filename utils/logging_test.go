package utils

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	. "gopkg.in/check.v1"
)

type LoggingSuite struct {
	origLogger zerolog.Logger
}

var _ = Suite(&LoggingSuite{})

func (s *LoggingSuite) SetUpTest(c *C) {
	s.origLogger = log.Logger
}

func (s *LoggingSuite) TearDownTest(c *C) {
	log.Logger = s.origLogger
}

func (s *LoggingSuite) TestGetLogLevelOrDebug(c *C) {
	c.Check(GetLogLevelOrDebug("info"), Equals, zerolog.InfoLevel)
	c.Check(GetLogLevelOrDebug("ERROR"), Equals, zerolog.ErrorLevel)
	c.Check(GetLogLevelOrDebug("warning"), Equals, zerolog.WarnLevel)
	c.Check(GetLogLevelOrDebug("warn"), Equals, zerolog.WarnLevel)
	c.Check(GetLogLevelOrDebug("loud"), Equals, zerolog.DebugLevel)
}

func (s *LoggingSuite) TestSetupJSONLogger(c *C) {
	var buf bytes.Buffer
	SetupJSONLogger("info", &buf)

	log.Debug().Msg("hidden")
	c.Check(buf.Len(), Equals, 0)

	log.Info().Int64("symbols", 3).Msg("compressed")

	var event map[string]interface{}
	c.Assert(json.Unmarshal(buf.Bytes(), &event), IsNil)
	c.Check(event["message"], Equals, "compressed")
	c.Check(event["level"], Equals, "info")
	c.Check(event["symbols"], Equals, float64(3))
	c.Check(event["time"], NotNil)
}

func (s *LoggingSuite) TestSetupDefaultLogger(c *C) {
	SetupDefaultLogger("error")
	c.Check(log.Logger.GetLevel(), Equals, zerolog.ErrorLevel)

	SetupLogger("default", "debug")
	c.Check(log.Logger.GetLevel(), Equals, zerolog.DebugLevel)
}

func (s *LoggingSuite) TestRunningOnTerminal(c *C) {
	c.Check(RunningOnTerminal(), FitsTypeOf, true)
}
