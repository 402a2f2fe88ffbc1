// Package cli es la capa de vistas: cada página es un comando protegido por nivel de permiso.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-app/internal/application/inventory"
	"github.com/jhoicas/Inventario-app/internal/application/notify"
	"github.com/jhoicas/Inventario-app/internal/application/report"
	"github.com/jhoicas/Inventario-app/internal/application/users"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

// Version versión mostrada en configuración.
const Version = "1.0.0"

// Errores propios de la capa de vistas.
var (
	ErrLoginRequired = errors.New("inicie sesión para continuar")
	ErrForbidden     = errors.New("no tiene permiso para acceder a esta página")
	ErrOutOfStock    = errors.New("producto sin stock")
	ErrUsage         = errors.New("uso incorrecto")
)

// Session lo que las vistas necesitan de la sesión.
type Session interface {
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	CurrentUser() *entity.User
	IsAuthenticated() bool
	CheckPermission(required entity.Permission) bool
}

// Deps dependencias de la aplicación.
type Deps struct {
	Session   Session
	Inventory inventory.Store
	Users     *users.Store
	Reports   report.Generator
	Bus       *notify.Bus
	Out       io.Writer
	In        io.Reader
	Now       func() time.Time
}

// App despacha comandos a páginas.
type App struct {
	session   Session
	inventory inventory.Store
	users     *users.Store
	reports   report.Generator
	out       io.Writer
	in        io.Reader
	now       func() time.Time
	loaded    bool
}

// New construye la app y la suscribe al bus para imprimir los avisos.
func New(d Deps) *App {
	a := &App{
		session:   d.Session,
		inventory: d.Inventory,
		users:     d.Users,
		reports:   d.Reports,
		out:       d.Out,
		in:        d.In,
		now:       d.Now,
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.now == nil {
		a.now = time.Now
	}
	if d.Bus != nil {
		d.Bus.Subscribe(a.printEvent)
	}
	return a
}

func (a *App) printEvent(e notify.Event) {
	switch e.Kind {
	case notify.KindSuccess:
		fmt.Fprintf(a.out, "✓ %s\n", e.Message)
	case notify.KindError, notify.KindSessionExpired:
		fmt.Fprintf(a.out, "✗ %s\n", e.Message)
		if e.Kind == notify.KindSessionExpired {
			// la lista cargada pertenece a la sesión cerrada
			a.loaded = false
		}
	}
}

// IsViewError indica si err es propio de la capa de vistas y no fue publicado como aviso.
func IsViewError(err error) bool {
	return errors.Is(err, ErrLoginRequired) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrUsage)
}

// guard evalúa la ruta: primero autenticación, luego nivel.
func (a *App) guard(required entity.Permission) error {
	if !a.session.IsAuthenticated() {
		return ErrLoginRequired
	}
	if !a.session.CheckPermission(required) {
		return ErrForbidden
	}
	return nil
}

// ensureLoaded carga el catálogo una vez por sesión de la app.
func (a *App) ensureLoaded(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	if err := a.inventory.Load(ctx); err != nil {
		return err
	}
	a.loaded = true
	return nil
}

// Run ejecuta un comando (args sin el nombre del binario).
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		a.session.Logout(ctx)
		a.loaded = false
		return nil
	case "dashboard":
		return a.dashboard(ctx)
	case "products":
		return a.products(ctx, rest)
	case "users":
		return a.usersPage(rest)
	case "settings":
		return a.settings()
	case "report":
		return a.report(ctx, rest)
	case "shell":
		return a.Shell(ctx)
	case "help":
		a.usage()
		return nil
	}
	fmt.Fprintf(a.out, "comando desconocido: %s\n", cmd)
	a.usage()
	return fmt.Errorf("%w: comando %q", ErrUsage, cmd)
}

func (a *App) usage() {
	fmt.Fprint(a.out, strings.TrimLeft(`
Uso: inventario <comando> [argumentos]

  login --email <email> --password <contraseña>
  logout
  dashboard
  products list [--search <término>]
  products add --code <código> --name <nombre> [--category] [--description] [--stock] [--price]
  products edit <id> [--code] [--name] [--category] [--description] [--price]
  products delete <id>
  products stock-in <id> <cantidad>
  products stock-out <id> <cantidad>
  users list
  users add --name <nombre> --email <email> --permission <viewer|operator|admin>
  users edit <id> [--name] [--permission]
  users delete <id>
  settings
  report --out <archivo.pdf>
  shell
`, "\n"))
}
