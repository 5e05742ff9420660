package scenarios

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/tests/e2e/harness"
)

// TestRegistryWorkflow_ConfigSignature proves a [[signatures]] block is
// prepended to the registry and outranks every built-in.
func TestRegistryWorkflow_ConfigSignature(t *testing.T) {
	env := harness.NewE2EEnvironment(t)

	env.Step("Writing a config with a custom signature")
	env.WriteConfig(`
[[signatures]]
id = "fleet-bot"
name = "Fleet Bot"
category = "hybrid"
env = ["FLEET_BOT"]
env_none = ["FLEET_BOT_DISABLED"]
`)

	env.Step("Custom signature wins over a built-in match")
	env.PinInputs(agentsense.EnvSnapshot{"FLEET_BOT": "1", "CLAUDECODE": "1"}, nil)
	res := env.RunCLI("--format", "json")
	env.AssertExitCode(res, 0)
	env.AssertStdoutContains(res, "fleet-bot")
	env.AssertStdoutContains(res, `"category": "hybrid"`)

	env.Step("Its none clause still applies")
	env.PinInputs(agentsense.EnvSnapshot{
		"FLEET_BOT": "1", "FLEET_BOT_DISABLED": "1", "CLAUDECODE": "1",
	}, nil)
	res = env.RunCLI("--format", "json")
	env.AssertExitCode(res, 0)
	env.AssertStdoutContains(res, "claude-code")

	env.Logger.Elapsed()
}

// TestRegistryWorkflow_DisabledSignature removes a built-in via config.
func TestRegistryWorkflow_DisabledSignature(t *testing.T) {
	env := harness.NewE2EEnvironment(t)

	env.Step("Disabling the warp signature")
	env.WriteConfig(`disabled = ["warp"]` + "\n")
	env.PinInputs(agentsense.EnvSnapshot{"TERM_PROGRAM": "WarpTerminal"}, nil)

	res := env.RunCLI("--format", "json")
	env.AssertExitCode(res, 1)
	env.AssertStdoutContains(res, `"matched": false`)

	env.Step("The signatures listing omits it too")
	res = env.RunCLI("signatures", "--format", "json")
	env.AssertExitCode(res, 0)
	if strings.Contains(res.Stdout, `"warp"`) {
		t.Errorf("signatures output still lists warp:\n%s", res.Stdout)
	}

	env.Logger.Elapsed()
}

// TestRegistryWorkflow_ListOrder checks the listing reflects priority
// order, custom signatures first.
func TestRegistryWorkflow_ListOrder(t *testing.T) {
	env := harness.NewE2EEnvironment(t)

	env.WriteConfig(`
[[signatures]]
id = "first-bot"
name = "First Bot"
category = "agent"
env = ["FIRST_BOT"]
`)

	res := env.RunCLI("signatures", "--format", "json")
	env.AssertExitCode(res, 0)

	var docs []struct {
		Priority int    `json:"priority"`
		ID       string `json:"id"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &docs); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("empty listing")
	}
	if docs[0].ID != "first-bot" || docs[0].Priority != 1 {
		t.Errorf("first entry = %+v, want first-bot at priority 1", docs[0])
	}

	env.Logger.Elapsed()
}

// TestRegistryWorkflow_BadConfigRejected surfaces a decoding error with
// the offending block's id.
func TestRegistryWorkflow_BadConfigRejected(t *testing.T) {
	env := harness.NewE2EEnvironment(t)

	env.WriteConfig(`
[[signatures]]
id = "broken-bot"
name = "Broken Bot"
category = "overlord"
env = ["X"]
`)
	env.PinInputs(agentsense.EnvSnapshot{"CLAUDECODE": "1"}, nil)

	res := env.RunCLI("--format", "json")
	env.AssertExitCode(res, 1)
	env.AssertStderrContains(res, "broken-bot")
	env.AssertStderrContains(res, "invalid category")

	env.Logger.Elapsed()
}
