package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mohamed-2473/Store/internal/detail"
	"github.com/mohamed-2473/Store/internal/domain"
	"github.com/mohamed-2473/Store/internal/listing"
	"github.com/mohamed-2473/Store/internal/storefront"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/health"
	"github.com/mohamed-2473/Store/pkg/logger"
)

// Usage is printed for unknown commands.
const Usage = `usage: storefront <command> [flags]

commands:
  home                          featured products and categories
  categories                    category list from the catalog API
  list [-category c] [-q text] [-sort key] [-page n]
                                filtered, sorted and paginated listing
  search <query>                keyword search delegated to the catalog API
  show [-image n] <id>          product detail with related products
  health                        check the catalog API (and redis when enabled)

sort keys: default, price-asc, price-desc, name-asc, name-desc, rating`

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.errOut, Usage)
		return apperrors.InvalidInput("no command given")
	}

	cmd, rest := args[0], args[1:]
	log := logger.WithContext(ctx, a.logger)
	log.DebugContext(ctx, "running command", slog.String("command", cmd))

	switch cmd {
	case "home":
		return a.runHome(ctx)
	case "categories":
		return a.runCategories(ctx)
	case "list", "products":
		return a.runList(ctx, rest)
	case "search":
		return a.runSearch(ctx, rest)
	case "show", "product":
		return a.runShow(ctx, rest)
	case "health":
		return a.runHealth(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, Usage)
		return nil
	default:
		fmt.Fprintln(a.errOut, Usage)
		return apperrors.InvalidInput(fmt.Sprintf("unknown command %q", cmd))
	}
}

func (a *App) runHome(ctx context.Context) error {
	home, err := storefront.LoadHome(ctx, a.catalog, a.logger)
	if err != nil {
		a.notify("Error loading products")
		return err
	}
	return a.render(home)
}

func (a *App) runCategories(ctx context.Context) error {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		a.notify("Error loading categories")
		return err
	}
	return a.render(struct {
		Categories []string `json:"categories"`
	}{categories})
}

// listView is the rendered listing page.
type listView struct {
	Criteria   domain.Criteria `json:"criteria"`
	Categories []string        `json:"categories"`
	Listing    domain.Listing  `json:"listing"`
}

func (a *App) runList(ctx context.Context, args []string) error {
	fs := newFlagSet("list", a.errOut)
	category := fs.String("category", domain.AllCategories, "category to show")
	query := fs.String("q", "", "free-text filter on title and description")
	sort := fs.String("sort", string(domain.SortDefault), "sort key")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	criteria, err := listing.ParseCriteria(*category, *query, *sort, *page)
	if err != nil {
		return err
	}
	return a.renderListing(ctx, criteria)
}

// renderListing loads the catalog into a fresh session and prints the page
// selected by criteria.
func (a *App) renderListing(ctx context.Context, criteria domain.Criteria) error {
	session := storefront.NewSession(a.catalog, a.logger)
	if err := session.Load(ctx); err != nil {
		a.notify("Error loading products")
		return err
	}

	page := session.SetCriteria(criteria)
	return a.render(listView{
		Criteria:   session.Criteria(),
		Categories: session.Categories(),
		Listing:    page,
	})
}

func (a *App) runSearch(ctx context.Context, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return apperrors.InvalidInput("search needs a query")
	}

	products, err := a.catalog.Search(ctx, query)
	if err != nil {
		a.notify("Error searching products")
		return err
	}
	return a.render(struct {
		Query    string           `json:"query"`
		Total    int              `json:"total"`
		Products []domain.Product `json:"products"`
	}{query, len(products), products})
}

// productView is the rendered detail page.
type productView struct {
	Product         domain.Product   `json:"product"`
	CurrentImage    string           `json:"currentImage"`
	SelectedImage   int              `json:"selectedImage"`
	DiscountedPrice float64          `json:"discountedPrice"`
	HasDiscount     bool             `json:"hasDiscount"`
	Stars           [5]bool          `json:"stars"`
	HalfStar        bool             `json:"halfStar"`
	Related         []domain.Product `json:"related"`
	RelatedError    string           `json:"relatedError,omitempty"`
}

func (a *App) runShow(ctx context.Context, args []string) error {
	fs := newFlagSet("show", a.errOut)
	image := fs.Int("image", 0, "index of the image to select")
	if err := fs.Parse(args); err != nil {
		return apperrors.InvalidInput(err.Error())
	}
	if fs.NArg() != 1 {
		return apperrors.InvalidInput("show needs exactly one product id")
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid product id %q", fs.Arg(0)))
	}

	page, err := a.detail.Load(ctx, id)
	if err != nil {
		return a.redirectToListing(ctx, err)
	}

	page.View.SelectImage(*image)
	view := productView{
		Product:         page.View.Product,
		CurrentImage:    page.View.CurrentImage(),
		SelectedImage:   page.View.SelectedIndex(),
		DiscountedPrice: page.View.DiscountedPrice(),
		HasDiscount:     page.View.HasDiscount(),
		Stars:           detail.Stars(page.View.Product.Rating.Rate),
		HalfStar:        detail.HalfStar(page.View.Product.Rating.Rate),
		Related:         page.Related,
	}
	if page.RelatedErr != nil {
		view.RelatedError = "related products unavailable"
	}
	return a.render(view)
}

// redirectToListing notifies the user that the product could not be shown
// and falls back to the default listing. The load error is returned.
func (a *App) redirectToListing(ctx context.Context, cause error) error {
	switch {
	case apperrors.IsNotFound(cause):
		a.notify("Product not found")
	case errors.Is(cause, context.Canceled):
		return cause
	default:
		a.notify("Error loading product")
	}

	if err := a.renderListing(ctx, domain.DefaultCriteria()); err != nil {
		a.logger.WarnContext(ctx, "listing fallback failed", slog.String("error", err.Error()))
	}
	return cause
}

func (a *App) runHealth(ctx context.Context) error {
	report := a.health.Check(ctx)
	if err := a.render(report); err != nil {
		return err
	}
	if report.Status == health.StatusDown {
		return apperrors.Network("catalog API unhealthy", 0, nil)
	}
	return nil
}

// notify shows a one-line message to the user.
func (a *App) notify(message string) {
	fmt.Fprintf(a.errOut, "error: %s\n", message)
}

func (a *App) render(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.Internal(fmt.Errorf("encode output: %w", err))
	}
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
