package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"c0/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Value *int64 `json:"value,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func position(line, col uint32) string {
	return fmt.Sprintf("%d:%d", line+1, col+1)
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-12q at %s-%s",
			i+1, tok.Kind, tok.Text,
			position(tok.Start.Line, tok.Start.Col),
			position(tok.End.Line, tok.End.Col),
		); err != nil {
			return err
		}
		if tok.IsLiteral() {
			if _, err := fmt.Fprintf(w, " = %d", tok.Value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: position(tok.Start.Line, tok.Start.Col),
			End:   position(tok.End.Line, tok.End.Col),
		}
		if tok.IsLiteral() {
			v := tok.Value
			out.Value = &v
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
