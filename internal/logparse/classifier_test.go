package logparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinytelemetry/qtrace/internal/model"
)

const testRoot = "/home/dev/shop/"

func TestClassify(t *testing.T) {
	c := NewClassifier(testRoot, model.DefaultMarkers())

	tests := []struct {
		name  string
		input string
		want  LineKind
	}{
		// Event starts
		{"dated event", `2024-01-15 10:30:45 ActiveRecord::Base -- { :sql => "SELECT 1", :allocations => 3 }`, EventStart},
		{"undated event", `  ActiveRecord { :sql => "SELECT 1", :allocations => 3 }`, EventStart},
		{"path prefixed event", testRoot + `app/x.rb ActiveRecord :sql => "SELECT 1"`, EventStart},
		// Stack frames
		{"frame", testRoot + "app/models/user.rb:12:in `find'", StackFrame},
		{"frame mentioning namespace", testRoot + "app/models/active_record_ext.rb:3 ActiveRecord", StackFrame},
		// Noise
		{"dated header", "2024-01-15 10:30:45 Started GET /users", Noise},
		{"dated query without payload", "2024-01-15 10:30:45 ActiveRecord::Base connection established", Noise},
		{"payload marker without namespace", `2024-01-15 {:sql => "SELECT 1"}`, Noise},
		{"foreign path", "/usr/lib/ruby/gems/3.2.0/gems/rack.rb:10", Noise},
		{"relative path", "app/models/user.rb:12", Noise},
		{"indented frame", "  " + testRoot + "app/models/user.rb:12", Noise},
		{"empty", "", Noise},
		{"short date", "2024-1-15 ActiveRecord", Noise},
		{"lowercase marker", `activerecord :sql => "x"`, Noise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input), "Classify(%q)", tt.input)
		})
	}
}

func TestIsRootCandidate(t *testing.T) {
	c := NewClassifier(testRoot, model.DefaultMarkers())

	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-15 anything", true},
		{"1999-12-31T23:59:59Z", true},
		{testRoot + "lib/x.rb:1", true},
		{"x 2024-01-15", false},
		{"/other/root/x.rb", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsRootCandidate(tt.input), "IsRootCandidate(%q)", tt.input)
		})
	}
}

func TestClassifyCustomMarkers(t *testing.T) {
	c := NewClassifier("/srv/app/", model.Markers{Query: "Sequel", SQL: "sql="})

	assert.Equal(t, EventStart, c.Classify("2024-01-15 Sequel sql=SELECT 1"))
	assert.Equal(t, Noise, c.Classify(`2024-01-15 ActiveRecord :sql => "SELECT 1"`), "default markers should not match")
	assert.Equal(t, StackFrame, c.Classify("/srv/app/models/x.rb:1"))
}

func TestClassifyEmptySourceRoot(t *testing.T) {
	c := NewClassifier("", model.DefaultMarkers())

	assert.Equal(t, Noise, c.Classify("/anything/at/all.rb:1"), "empty root must never yield frames")
	assert.Equal(t, Noise, c.Classify("2024-01-15 10:30:45 Started GET /"))
}

func TestLineKindString(t *testing.T) {
	for kind, want := range map[LineKind]string{
		Noise:      "Noise",
		EventStart: "EventStart",
		StackFrame: "StackFrame",
	} {
		assert.Equal(t, want, kind.String())
	}
}
