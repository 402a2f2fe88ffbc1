package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-app/internal/application/dashboard"
	"github.com/jhoicas/Inventario-app/internal/application/dto"
	"github.com/jhoicas/Inventario-app/internal/application/report"
	"github.com/jhoicas/Inventario-app/internal/domain/entity"
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// visited nombres de flags presentes en la línea de comandos.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

// ── Login ─────────────────────────────────────────────────────────────────────

func (a *App) login(ctx context.Context, args []string) error {
	if a.session.IsAuthenticated() {
		return a.dashboard(ctx)
	}
	fs := a.flagSet("login")
	email := fs.String("email", "", "correo")
	password := fs.String("password", "", "contraseña")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(a.out, "email y password son requeridos")
		return ErrUsage
	}
	if !a.session.Login(ctx, *email, *password) {
		return fmt.Errorf("login: %s", *email)
	}
	a.loaded = false
	return a.dashboard(ctx)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (a *App) dashboard(ctx context.Context) error {
	if err := a.guard(entity.PermissionViewer); err != nil {
		return err
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	user := a.session.CurrentUser()
	s := dashboard.Summarize(a.inventory.Products())

	fmt.Fprintf(a.out, "Dashboard, %s (%s)\n\n", user.Name, user.Permission)
	w := a.table()
	fmt.Fprintf(w, "Total de productos\t%d\n", s.TotalProducts)
	fmt.Fprintf(w, "Ítems en stock\t%d\n", s.TotalItems)
	fmt.Fprintf(w, "Stock bajo\t%d\n", len(s.LowStock))
	fmt.Fprintf(w, "Valor del inventario\t%s\n", dashboard.FormatBRL(s.InventoryValue))
	if err := w.Flush(); err != nil {
		return err
	}
	if len(s.LowStock) > 0 {
		fmt.Fprintln(a.out, "\nProductos con stock bajo:")
		for _, p := range s.LowStock {
			fmt.Fprintf(a.out, "  - %s: %d unidades\n", p.Name, p.CurrentStock)
		}
	}
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (a *App) products(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.productList(ctx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.productList(ctx, rest)
	case "add":
		return a.productAdd(ctx, rest)
	case "edit":
		return a.productEdit(ctx, rest)
	case "delete":
		return a.productDelete(ctx, rest)
	case "stock-in":
		return a.productStock(ctx, rest, 1)
	case "stock-out":
		return a.productStock(ctx, rest, -1)
	}
	fmt.Fprintf(a.out, "subcomando desconocido: products %s\n", sub)
	return ErrUsage
}

func (a *App) productList(ctx context.Context, args []string) error {
	if err := a.guard(entity.PermissionViewer); err != nil {
		return err
	}
	fs := a.flagSet("products list")
	search := fs.String("search", "", "filtra por nombre o categoría")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}

	list := a.inventory.Search(*search)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No se encontraron productos.")
	} else {
		w := a.table()
		fmt.Fprintln(w, "ID\tCÓDIGO\tNOMBRE\tCATEGORÍA\tSTOCK\tPRECIO\t")
		for _, p := range list {
			mark := ""
			if p.LowStock() {
				mark = "⚠"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", p.ID, p.Code, p.Name, p.Category, p.CurrentStock, dashboard.FormatBRL(p.Price), mark)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	a.printActions()
	return nil
}

// printActions acciones disponibles según el nivel del usuario.
func (a *App) printActions() {
	var actions []string
	if a.session.CheckPermission(entity.PermissionOperator) {
		actions = append(actions, "stock-in", "stock-out")
	}
	if a.session.CheckPermission(entity.PermissionAdmin) {
		actions = append(actions, "add", "edit", "delete")
	}
	if len(actions) > 0 {
		fmt.Fprintf(a.out, "\nAcciones: %s\n", strings.Join(actions, ", "))
	}
}

func (a *App) productAdd(ctx context.Context, args []string) error {
	if err := a.guard(entity.PermissionAdmin); err != nil {
		return err
	}
	fs := a.flagSet("products add")
	code := fs.String("code", "", "código")
	name := fs.String("name", "", "nombre")
	description := fs.String("description", "", "descripción")
	category := fs.String("category", "", "categoría")
	stock := fs.Int("stock", 0, "stock inicial")
	price := fs.String("price", "0", "precio")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *code == "" || *name == "" {
		fmt.Fprintln(a.out, "code y name son requeridos")
		return ErrUsage
	}
	p, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("%w: precio %q", ErrUsage, *price)
	}
	_, err = a.inventory.Add(ctx, dto.CreateProductRequest{
		Code: *code, Name: *name, Description: *description, Category: *category,
		CurrentStock: *stock, Price: p,
	})
	return err
}

func (a *App) productEdit(ctx context.Context, args []string) error {
	if err := a.guard(entity.PermissionAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "uso: products edit <id> [--name ...]")
		return ErrUsage
	}
	id := args[0]
	fs := a.flagSet("products edit")
	code := fs.String("code", "", "código")
	name := fs.String("name", "", "nombre")
	description := fs.String("description", "", "descripción")
	category := fs.String("category", "", "categoría")
	price := fs.String("price", "", "precio")
	if err := a.parse(fs, args[1:]); err != nil {
		return err
	}

	set := visited(fs)
	var in dto.UpdateProductRequest
	if set["code"] {
		in.Code = code
	}
	if set["name"] {
		in.Name = name
	}
	if set["description"] {
		in.Description = description
	}
	if set["category"] {
		in.Category = category
	}
	if set["price"] {
		p, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("%w: precio %q", ErrUsage, *price)
		}
		in.Price = &p
	}
	if in.Empty() {
		fmt.Fprintln(a.out, "nada para actualizar")
		return ErrUsage
	}
	return a.inventory.Update(ctx, id, in)
}

func (a *App) productDelete(ctx context.Context, args []string) error {
	if err := a.guard(entity.PermissionAdmin); err != nil {
		return err
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "uso: products delete <id>")
		return ErrUsage
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	return a.inventory.Delete(ctx, args[0])
}

// productStock sign 1 entrada, -1 salida. La salida se rechaza si el producto no tiene stock.
func (a *App) productStock(ctx context.Context, args []string, sign int) error {
	if err := a.guard(entity.PermissionOperator); err != nil {
		return err
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "uso: products stock-in|stock-out <id> <cantidad>")
		return ErrUsage
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty <= 0 {
		fmt.Fprintln(a.out, "la cantidad debe ser un entero positivo")
		return ErrUsage
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	if sign < 0 {
		if p, ok := a.inventory.Get(args[0]); ok && p.CurrentStock <= 0 {
			fmt.Fprintf(a.out, "✗ %s no tiene stock\n", p.Name)
			return ErrOutOfStock
		}
	}
	return a.inventory.UpdateQuantity(ctx, args[0], sign*qty)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func (a *App) usersPage(args []string) error {
	if err := a.guard(entity.PermissionAdmin); err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "list" {
		w := a.table()
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tPERMISO")
		for _, u := range a.users.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Permission)
		}
		return w.Flush()
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		fs := a.flagSet("users add")
		name := fs.String("name", "", "nombre")
		email := fs.String("email", "", "correo")
		perm := fs.String("permission", string(entity.PermissionViewer), "viewer|operator|admin")
		if err := a.parse(fs, rest); err != nil {
			return err
		}
		p, err := entity.ParsePermission(*perm)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		_, err = a.users.Add(dto.CreateUserRequest{Name: *name, Email: *email, Permission: p})
		return err

	case "edit":
		if len(rest) == 0 {
			fmt.Fprintln(a.out, "uso: users edit <id> [--name] [--permission]")
			return ErrUsage
		}
		fs := a.flagSet("users edit")
		name := fs.String("name", "", "nombre")
		perm := fs.String("permission", "", "viewer|operator|admin")
		if err := a.parse(fs, rest[1:]); err != nil {
			return err
		}
		set := visited(fs)
		var in dto.UpdateUserRequest
		if set["name"] {
			in.Name = name
		}
		if set["permission"] {
			p, err := entity.ParsePermission(*perm)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			in.Permission = &p
		}
		return a.users.Update(rest[0], in)

	case "delete":
		if len(rest) != 1 {
			fmt.Fprintln(a.out, "uso: users delete <id>")
			return ErrUsage
		}
		return a.users.Delete(rest[0])
	}
	fmt.Fprintf(a.out, "subcomando desconocido: users %s\n", sub)
	return ErrUsage
}

// ── Configuración ─────────────────────────────────────────────────────────────

func (a *App) settings() error {
	if err := a.guard(entity.PermissionViewer); err != nil {
		return err
	}
	u := a.session.CurrentUser()
	w := a.table()
	fmt.Fprintf(w, "Nombre\t%s\n", u.Name)
	fmt.Fprintf(w, "Email\t%s\n", u.Email)
	fmt.Fprintf(w, "Permiso\t%s\n", u.Permission)
	fmt.Fprintf(w, "Versión\t%s\n", Version)
	return w.Flush()
}

// ── Reporte ───────────────────────────────────────────────────────────────────

func (a *App) report(ctx context.Context, args []string) error {
	if err := a.guard(entity.PermissionViewer); err != nil {
		return err
	}
	fs := a.flagSet("report")
	out := fs.String("out", "reporte-stock.pdf", "archivo de salida")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	r := report.Build(a.inventory.Products(), a.session.CurrentUser(), a.now())
	doc, err := a.reports.GenerateStockReport(ctx, r)
	if err != nil {
		return fmt.Errorf("reporte: %w", err)
	}
	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		return fmt.Errorf("reporte: escribir %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "✓ Reporte generado: %s\n", *out)
	return nil
}
