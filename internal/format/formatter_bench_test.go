package format

import "testing"

var benchmarkInput = `config App {
name: string;
port: number @range(1, 65535) = 8080;
debug: boolean = false;
db: {
  host: string;
  port: number;
  credentials: {
    user: string;
    pass: string @min_length(8);
  };
}
services: {
  *: { port: number; timeout: duration; };
  auth: { port: number; timeout: duration; };
  constraints {
    validate auth.port > 0;
  }
}
constraints {
  requires debug => name;
  conflicts db with services;
}
}
`

func BenchmarkFormatter(b *testing.B) {
	formatter := New(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := formatter.Format(benchmarkInput); err != nil {
			b.Fatalf("Format failed: %v", err)
		}
	}
}

func BenchmarkFormatterSmall(b *testing.B) {
	input := `config App {
name: string;
port: number;
}`
	formatter := New(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := formatter.Format(input); err != nil {
			b.Fatalf("Format failed: %v", err)
		}
	}
}

func BenchmarkFormatterLarge(b *testing.B) {
	input := "config Root {\n"
	for i := 0; i < 50; i++ {
		input += "service" + string(rune('A'+i%26)) + `: {
  host: string;
  port: number @range(1, 65535);
  timeout: duration;
  enabled: boolean = true;
};
`
	}
	input += "}\n"

	formatter := New(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := formatter.Format(input); err != nil {
			b.Fatalf("Format failed: %v", err)
		}
	}
}
