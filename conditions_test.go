package agentsense

import "testing"

func TestEnvConditionMatch(t *testing.T) {
	env := EnvSnapshot{
		"CLAUDECODE":   "1",
		"PAGER":        "cat",
		"EMPTY":        "",
		"TERM_PROGRAM": "zed",
		"SPACED":       " cat ",
	}

	tests := []struct {
		name string
		cond EnvCondition
		want bool
	}{
		{
			name: "presence of set variable",
			cond: Env("CLAUDECODE"),
			want: true,
		},
		{
			name: "presence of unset variable",
			cond: Env("NOPE"),
			want: false,
		},
		{
			name: "presence of empty variable counts as unset",
			cond: Env("EMPTY"),
			want: false,
		},
		{
			name: "equals exact value",
			cond: EnvEquals("PAGER", "cat"),
			want: true,
		},
		{
			name: "equals wrong value",
			cond: EnvEquals("PAGER", "less"),
			want: false,
		},
		{
			name: "equals is case-sensitive",
			cond: EnvEquals("TERM_PROGRAM", "Zed"),
			want: false,
		},
		{
			name: "equals does not trim",
			cond: EnvEquals("SPACED", "cat"),
			want: false,
		},
		{
			name: "equals on unset variable",
			cond: EnvEquals("NOPE", "cat"),
			want: false,
		},
		{
			name: "equals empty expectation never matches",
			cond: EnvEquals("EMPTY", ""),
			want: false,
		},
		{
			name: "zero kind never matches",
			cond: EnvCondition{Name: "CLAUDECODE"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Match(env); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditionGroupMatch(t *testing.T) {
	env := EnvSnapshot{
		"SHELL":          "/bin/jsh",
		"npm_config_yes": "true",
		"TERM_PROGRAM":   "zed",
	}

	tests := []struct {
		name  string
		group ConditionGroup
		want  bool
	}{
		{
			name:  "any with one matching member",
			group: ConditionGroup{Any: []EnvCondition{Env("NOPE"), Env("SHELL")}},
			want:  true,
		},
		{
			name:  "any with no matching member",
			group: ConditionGroup{Any: []EnvCondition{Env("NOPE"), Env("ALSO_NOPE")}},
			want:  false,
		},
		{
			name: "all with every member matching",
			group: ConditionGroup{All: []EnvCondition{
				EnvEquals("SHELL", "/bin/jsh"),
				EnvEquals("npm_config_yes", "true"),
			}},
			want: true,
		},
		{
			name: "all with one member failing",
			group: ConditionGroup{All: []EnvCondition{
				EnvEquals("SHELL", "/bin/jsh"),
				Env("NOPE"),
			}},
			want: false,
		},
		{
			name:  "none with no member matching",
			group: ConditionGroup{None: []EnvCondition{Env("NOPE")}},
			want:  true,
		},
		{
			name:  "none with a member matching",
			group: ConditionGroup{None: []EnvCondition{EnvEquals("npm_config_yes", "true")}},
			want:  false,
		},
		{
			name: "all three clauses together",
			group: ConditionGroup{
				Any:  []EnvCondition{Env("SHELL")},
				All:  []EnvCondition{EnvEquals("TERM_PROGRAM", "zed")},
				None: []EnvCondition{Env("NOPE")},
			},
			want: true,
		},
		{
			name: "passing any and all but failing none",
			group: ConditionGroup{
				Any:  []EnvCondition{Env("SHELL")},
				All:  []EnvCondition{EnvEquals("TERM_PROGRAM", "zed")},
				None: []EnvCondition{Env("npm_config_yes")},
			},
			want: false,
		},
		{
			// The documented foot-gun: no clauses means match everything.
			name:  "empty group matches unconditionally",
			group: ConditionGroup{},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.group.Match(env); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditionGroupEmptyOnEmptyEnv(t *testing.T) {
	if !(ConditionGroup{}).Match(EnvSnapshot{}) {
		t.Error("empty group should match an empty environment")
	}
	if !(ConditionGroup{}).Empty() {
		t.Error("Empty() = false for a group with no clauses")
	}
	g := ConditionGroup{None: []EnvCondition{Env("X")}}
	if g.Empty() {
		t.Error("Empty() = true for a group with a none clause")
	}
}

func TestConditionKindValid(t *testing.T) {
	tests := []struct {
		kind ConditionKind
		want bool
	}{
		{ConditionPresence, true},
		{ConditionEquals, true},
		{ConditionKind(""), false},
		{ConditionKind("regex"), false},
	}
	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("ConditionKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestLiveEnvSnapshot(t *testing.T) {
	t.Setenv("AGENTSENSE_TEST_MARKER", "live")
	env := LiveEnv()
	if env["AGENTSENSE_TEST_MARKER"] != "live" {
		t.Errorf("LiveEnv()[AGENTSENSE_TEST_MARKER] = %q, want %q", env["AGENTSENSE_TEST_MARKER"], "live")
	}
}
