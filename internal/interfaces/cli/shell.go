package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Shell bucle interactivo sobre los mismos comandos. Termina con "exit", "quit" o EOF.
func (a *App) Shell(ctx context.Context) error {
	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		args := splitArgs(scanner.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "exit", "quit":
			return nil
		case "shell":
			continue
		}
		if err := a.Run(ctx, args); err != nil && IsViewError(err) {
			fmt.Fprintf(a.out, "✗ %v\n", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (a *App) prompt() string {
	if u := a.session.CurrentUser(); u != nil {
		return fmt.Sprintf("%s@inventario> ", strings.SplitN(u.Email, "@", 2)[0])
	}
	return "inventario> "
}

// splitArgs separa por espacios respetando comillas simples y dobles.
func splitArgs(line string) []string {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		pending bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			pending = true
		case unicode.IsSpace(r):
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
