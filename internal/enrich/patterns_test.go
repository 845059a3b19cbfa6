package enrich

import "testing"

func TestExtractContactSignalsEmail(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "first valid email wins",
			html: `Reach us at contato@padariasilva.com.br or vendas@padariasilva.com.br`,
			want: "contato@padariasilva.com.br",
		},
		{
			name: "denylisted emails are skipped",
			html: `test@example.com info@yoursite.com real@business.net`,
			want: "real@business.net",
		},
		{
			name: "only denylisted emails yields none",
			html: `test@example.com noreply@shop.com errors@sentry.io abc@sentry.example`,
			want: "",
		},
		{
			name: "no email",
			html: `<p>call us!</p>`,
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractContactSignals(tc.html).Email; got != tc.want {
				t.Fatalf("email=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractContactSignalsPhone(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{name: "brazilian with country and area code", html: `Tel: +55 (11) 98765-4321`, want: "+55 (11) 98765-4321"},
		{name: "brazilian landline", html: `Fone: (21) 3456-7890`, want: "(21) 3456-7890"},
		{name: "us shape", html: `Call (415) 555-1234 today`, want: "(415) 555-1234"},
		{name: "none", html: `no digits here`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractContactSignals(tc.html).Phone; got != tc.want {
				t.Fatalf("phone=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractContactSignalsWhatsApp(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{name: "wa.me link", html: `<a href="https://wa.me/5511987654321">chat</a>`, want: "wa.me/5511987654321"},
		{name: "whatsapp token with digits", html: `whatsapp:5511987654321`, want: "whatsapp:5511987654321"},
		{name: "whatsapp word without digits", html: `we are on whatsapp soon`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractContactSignals(tc.html).WhatsApp; got != tc.want {
				t.Fatalf("whatsapp=%q, want %q", got, tc.want)
			}
		})
	}
}
