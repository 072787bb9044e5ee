package report

import "strings"

var setupSnippet = []string{
	"if ActiveSupport::Subscriber.subscribers.last.class.name != 'ActiveRecordQueryTrace::CustomLogSubscriber'",
	"  ActiveRecordQueryTrace::CustomLogSubscriber.attach_to :active_record",
	"  ActiveRecordQueryTrace.enabled = true",
	"end",
}

// SetupInstructions explains how to make the application emit query logs in
// the shape this tool reads.
func SetupInstructions(color bool) string {
	th := newTheme(color)
	var b strings.Builder
	b.WriteString("Make sure you have the following snippet before your test code:\n\n")
	for _, line := range setupSnippet {
		b.WriteString(th.code(line) + "\n")
	}
	return b.String()
}
