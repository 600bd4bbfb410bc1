package clue

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/testutil"
)

type ScriptSuite struct {
	suite.Suite
	dir string
	ctx context.Context
}

func TestScriptSuite(t *testing.T) {
	suite.Run(t, new(ScriptSuite))
}

func (s *ScriptSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.ctx = context.Background()
}

func (s *ScriptSuite) writeScript(body string) string {
	path := filepath.Join(s.dir, "spymaster.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	s.Require().NoError(err)
	return path
}

func (s *ScriptSuite) TestReadsClueFromStdout() {
	path := s.writeScript(`cat > /dev/null
echo '{"clue":"ocean","number":2}'
echo 'AI Hint: OCEAN (2)'`)

	provider := NewScriptProvider(path, nil, RiskNormal, testutil.NopLogger())
	clue, err := provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.Require().NoError(err)

	s.Equal(model.Clue{Word: "ocean", Count: 2, Team: model.TeamRed}, clue)
}

func (s *ScriptSuite) TestSendsBoardOnStdin() {
	out := filepath.Join(s.dir, "request.json")
	path := s.writeScript(`cat > "$1"
echo '{"clue":"music","number":1}'`)

	provider := NewScriptProvider(path, []string{out}, RiskAggressive, testutil.NopLogger())
	_, err := provider.RequestClue(s.ctx, testView(model.TeamBlue))
	s.Require().NoError(err)

	data, err := os.ReadFile(out)
	s.Require().NoError(err)
	s.Contains(string(data), `"team":"BLUE"`)
	s.Contains(string(data), `"blue_words":["PIANO","DRUM"]`)
	s.Contains(string(data), `"risk":"AGGRESSIVE"`)
}

func (s *ScriptSuite) TestNonZeroExit() {
	path := s.writeScript(`echo 'model missing' >&2
exit 3`)

	provider := NewScriptProvider(path, nil, RiskNormal, testutil.NopLogger())
	_, err := provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
	s.Contains(err.Error(), "model missing")
}

func (s *ScriptSuite) TestInvalidOutput() {
	path := s.writeScript(`echo 'not json'`)

	provider := NewScriptProvider(path, nil, RiskNormal, testutil.NopLogger())
	_, err := provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
}

func (s *ScriptSuite) TestMissingCommand() {
	provider := NewScriptProvider(filepath.Join(s.dir, "nope"), nil, RiskNormal, testutil.NopLogger())
	_, err := provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
}

func (s *ScriptSuite) TestTimeoutKillsScript() {
	path := s.writeScript(`exec sleep 5`)

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	provider := NewScriptProvider(path, nil, RiskNormal, testutil.NopLogger())
	start := time.Now()
	_, err := provider.RequestClue(ctx, testView(model.TeamRed))

	s.ErrorIs(err, model.ErrClueUnavailable)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Less(time.Since(start), 4*time.Second)
}
