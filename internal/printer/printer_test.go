package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/oops/pkg/tuitest"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("created %s", "settings.yaml")
	p.Warnf("rules dir missing")
	p.Infof("nothing to do")
	p.Errorf("failed: %d", 2)
	p.Section("Rules")
	p.CheckItem("sudo", "1000")
	p.WarnItem("nope", "")
	p.FailItem("broken", "invalid regex")
	p.Printf("")

	want := "✔ created settings.yaml\n" +
		"! rules dir missing\n" +
		"• nothing to do\n" +
		"✘ failed: 2\n" +
		"Rules\n" +
		"  ✔ sudo 1000\n" +
		"  ● nope\n" +
		"  ✘ broken invalid regex"
	assert.Equal(t, want, tuitest.StripANSI(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf))

	Ctx(ctx).Printf("hello")
	assert.Equal(t, "hello\n", buf.String())

	assert.NotNil(t, Ctx(context.Background()))
}
