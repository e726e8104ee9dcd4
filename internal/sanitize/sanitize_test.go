package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLEmpty(t *testing.T) {
	if got := HTML("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestHTMLPlainText(t *testing.T) {
	if got := HTML("Ödeme alındı"); got != "Ödeme alındı" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestHTMLKeepsSafeMarkup(t *testing.T) {
	input := "<p><strong>Fatura</strong> kesildi</p>"
	if got := HTML(input); got != input {
		t.Errorf("expected safe markup preserved, got %q", got)
	}
}

func TestHTMLRemovesScript(t *testing.T) {
	got := HTML("<p>Merhaba</p><script>alert('xss')</script>")
	if got != "<p>Merhaba</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestHTMLRemovesJavascriptHref(t *testing.T) {
	got := HTML(`<a href="javascript:alert(1)">tıkla</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestTextStripsAllTags(t *testing.T) {
	got := Text("<b>Yeni</b> duyuru")
	if got != "Yeni duyuru" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}
