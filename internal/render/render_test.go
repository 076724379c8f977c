package render

import (
	"reflect"
	"testing"

	"github.com/aidanlsb/qref/internal/config"
)

const tarPage = "# tar\n\n> Archive utility.\n\n- Create archive:\n\n`tar cf {{archive.tar}} {{file}}`\n"

func TestRender(t *testing.T) {
	t.Run("plain golden output", func(t *testing.T) {
		got := Render(tarPage, Plain())
		expected := []string{
			"tar",
			"",
			"Archive utility.",
			"",
			"Create archive:",
			"    tar cf archive.tar file",
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		ss := NewStyleSheet(config.Default().Style)
		first := RenderText(tarPage, ss)
		second := RenderText(tarPage, ss)
		if first != second {
			t.Fatal("expected byte-identical output for repeated renders")
		}
	})

	t.Run("multiple examples are separated", func(t *testing.T) {
		page := "# tar\n\n- Create:\n\n`tar cf {{a}}`\n\n- Extract:\n\n`tar xf {{a}}`\n"
		got := Render(page, Plain())
		expected := []string{
			"tar",
			"",
			"Create:",
			"    tar cf a",
			"",
			"Extract:",
			"    tar xf a",
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})

	t.Run("description wraps at width", func(t *testing.T) {
		ss := Plain()
		ss.Width = 20
		got := Render("# tar\n\n> a description that wraps onto multiple rows\n", ss)
		expected := []string{
			"tar",
			"",
			"a description that",
			"wraps onto multiple",
			"rows",
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})

	t.Run("command lines never wrap", func(t *testing.T) {
		ss := Plain()
		ss.Width = 10
		got := Render(tarPage, ss)
		if last := got[len(got)-1]; last != "    tar cf archive.tar file" {
			t.Fatalf("expected the command line unwrapped, got %q", last)
		}
	})

	t.Run("empty page renders nothing", func(t *testing.T) {
		if got := RenderText("", Plain()); got != "" {
			t.Fatalf("expected empty output, got %q", got)
		}
	})

	t.Run("malformed page still renders", func(t *testing.T) {
		got := Render("no structure at all\njust text\n", Plain())
		expected := []string{"no structure at all", "just text"}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})
}
