package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/service"
)

// pantryService is the subset of service.Pantry the REPL drives.
type pantryService interface {
	AddIngredient(in service.IngredientInput) (*domain.Ingredient, error)
	RemoveQuantity(name string, qty float64, unit domain.Unit) (bool, error)
	FindIngredient(name string) (*domain.Ingredient, error)
	ListIngredients() []domain.Ingredient
	ExpiringBefore(date time.Time) ([]domain.Ingredient, error)
	StockValue() decimal.Decimal
	AddRecipe(in service.RecipeInput) (*domain.Recipe, error)
	FindRecipe(name string) (*domain.Recipe, error)
	ListRecipes() []*domain.Recipe
	RemoveRecipe(name string) (bool, error)
	CheckRecipe(name string) (*service.RecipeCheck, error)
	RecipesCanBeMade() ([]*domain.Recipe, error)
	RecipesCannotBeMade() ([]*domain.Recipe, error)
}

const helpText = `Commands:
  add <name> | <qty unit> | <best-before> | <price>   stock an ingredient
  list                                               list all ingredients
  find <name>                                        show one ingredient
  remove <name> | <qty unit>                         consume stock
  expiring <date>                                    ingredients expiring before date
  value                                              total value of stock
  recipe <name> | <description> | <method> | <servings>
                                                     create a recipe, then enter
                                                     "<name> | <qty unit>" lines,
                                                     blank line to finish
  recipes                                            list all recipes
  show <name>                                        show one recipe
  check <name>                                       can this recipe be made?
  cookable                                           recipes that can be made now
  uncookable                                         recipes that cannot be made now
  delete-recipe <name>                               remove a recipe
  help                                               this text
  exit                                               leave
Units: g, kg, dl, L, pcs`

var errExit = errors.New("exit")

type REPL struct {
	svc        pantryService
	scanner    *bufio.Scanner
	out        io.Writer
	dateLayout string
	logger     *slog.Logger
}

func New(svc pantryService, in io.Reader, out io.Writer, dateLayout string, logger *slog.Logger) *REPL {
	return &REPL{
		svc:        svc,
		scanner:    bufio.NewScanner(in),
		out:        out,
		dateLayout: dateLayout,
		logger:     logger,
	}
}

// Run reads commands until exit or end of input. Command errors are printed
// and the loop continues; only a read failure is returned.
func (r *REPL) Run() error {
	r.println("Pantry: inventory and cookbook. Type 'help' for commands.")
	for {
		r.print("\n> ")
		line, ok := r.readLine()
		if !ok {
			r.println("")
			return r.scanner.Err()
		}
		if line == "" {
			continue
		}

		cmd, args, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)
		args = strings.TrimSpace(args)

		err := r.dispatch(cmd, args)
		if errors.Is(err, errExit) {
			r.println("Goodbye!")
			return nil
		}
		if err != nil {
			r.logger.Debug("command failed", "command", cmd, "error", err)
			r.printf("Error: %v\n", err)
		}
	}
}

func (r *REPL) dispatch(cmd, args string) error {
	switch cmd {
	case "help", "?":
		r.println(helpText)
	case "add":
		return r.add(args)
	case "list", "ls":
		r.printIngredients(r.svc.ListIngredients(), "No ingredients in the inventory.")
	case "find":
		return r.find(args)
	case "remove", "rm":
		return r.remove(args)
	case "expiring":
		return r.expiring(args)
	case "value":
		r.printf("Total stock value: %s\n", r.svc.StockValue().StringFixed(2))
	case "recipe":
		return r.addRecipe(args)
	case "recipes":
		r.printRecipes(r.svc.ListRecipes(), "No recipes in the cookbook.")
	case "show":
		return r.show(args)
	case "check":
		return r.check(args)
	case "cookable":
		rs, err := r.svc.RecipesCanBeMade()
		if err != nil {
			return err
		}
		r.printRecipes(rs, "Nothing can be made with the current inventory.")
	case "uncookable":
		rs, err := r.svc.RecipesCannotBeMade()
		if err != nil {
			return err
		}
		r.printRecipes(rs, "Every recipe can be made with the current inventory.")
	case "delete-recipe":
		return r.deleteRecipe(args)
	case "exit", "quit":
		return errExit
	default:
		r.printf("Unknown command: %s (type 'help')\n", cmd)
	}
	return nil
}

func (r *REPL) add(args string) error {
	in, err := ParseIngredientLine(args, r.dateLayout)
	if err != nil {
		return err
	}
	stored, err := r.svc.AddIngredient(in)
	if err != nil {
		return err
	}
	r.printf("Stocked. %s\n", r.formatIngredient(*stored))
	return nil
}

func (r *REPL) find(name string) error {
	ing, err := r.svc.FindIngredient(name)
	if err != nil {
		return err
	}
	if ing == nil {
		r.printf("%q is not in the inventory.\n", name)
		return nil
	}
	r.println(r.formatIngredient(*ing))
	return nil
}

func (r *REPL) remove(args string) error {
	req, err := ParseRequirementLine(args)
	if err != nil {
		return err
	}
	ok, err := r.svc.RemoveQuantity(req.Name, req.Quantity, req.Unit)
	if err != nil {
		return err
	}
	if !ok {
		r.printf("%q is not in the inventory.\n", req.Name)
		return nil
	}
	left, err := r.svc.FindIngredient(req.Name)
	if err != nil {
		return err
	}
	if left == nil {
		r.printf("Removed. %s is used up.\n", req.Name)
		return nil
	}
	r.printf("Removed. %s\n", r.formatIngredient(*left))
	return nil
}

func (r *REPL) expiring(args string) error {
	date, err := time.Parse(r.dateLayout, args)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected layout %s", args, r.dateLayout)
	}
	ings, err := r.svc.ExpiringBefore(date)
	if err != nil {
		return err
	}
	r.printIngredients(ings, fmt.Sprintf("Nothing expires before %s.", date.Format(r.dateLayout)))
	return nil
}

func (r *REPL) addRecipe(args string) error {
	in, err := ParseRecipeLine(args)
	if err != nil {
		return err
	}

	r.println("Enter ingredients as '<name> | <qty unit>', blank line to finish.")
	for {
		r.print("  ingredient> ")
		line, ok := r.readLine()
		if !ok || line == "" {
			break
		}
		req, err := ParseRequirementLine(line)
		if err != nil {
			r.printf("  Error: %v\n", err)
			continue
		}
		in.Requirements = append(in.Requirements, req)
	}

	recipe, err := r.svc.AddRecipe(in)
	if err != nil {
		return err
	}
	r.printf("Recipe %q added with %d ingredient(s).\n", recipe.Name, len(recipe.Requirements()))
	return nil
}

func (r *REPL) show(name string) error {
	recipe, err := r.svc.FindRecipe(name)
	if err != nil {
		return err
	}
	if recipe == nil {
		r.printf("Recipe %q not found.\n", name)
		return nil
	}
	r.printf("%s (%d servings)\n", recipe.Name, recipe.Servings)
	r.printf("  %s\n", recipe.Description)
	r.println("  Ingredients:")
	for _, req := range recipe.Requirements() {
		r.printf("    - %s %s %s\n", formatQuantity(req.Quantity), req.Unit, req.Name)
	}
	r.printf("  Method: %s\n", recipe.PreparationMethod)
	return nil
}

func (r *REPL) check(name string) error {
	res, err := r.svc.CheckRecipe(name)
	if err != nil {
		return err
	}
	if res == nil {
		r.printf("Recipe %q not found.\n", name)
		return nil
	}
	if res.CanMake {
		r.printf("%s can be made with the current inventory.\n", res.Recipe.Name)
		return nil
	}
	r.printf("%s cannot be made:\n", res.Recipe.Name)
	for _, s := range res.Shortfalls {
		r.printf("  - %s: %s (missing %s %s)\n",
			s.Requirement.Name, s.Reason, formatQuantity(s.Missing), s.Requirement.Unit)
	}
	return nil
}

func (r *REPL) deleteRecipe(name string) error {
	ok, err := r.svc.RemoveRecipe(name)
	if err != nil {
		return err
	}
	if !ok {
		r.printf("Recipe %q not found.\n", name)
		return nil
	}
	r.printf("Recipe %q removed.\n", name)
	return nil
}

func (r *REPL) printIngredients(ings []domain.Ingredient, empty string) {
	if len(ings) == 0 {
		r.println(empty)
		return
	}
	r.printf("%-20s %12s %-4s %-12s %10s\n", "NAME", "QUANTITY", "UNIT", "BEST BEFORE", "PRICE/UNIT")
	r.println(strings.Repeat("-", 62))
	for _, ing := range ings {
		r.printf("%-20s %12s %-4s %-12s %10s\n",
			ing.Name, formatQuantity(ing.Quantity), ing.Unit,
			ing.BestBefore.Format(r.dateLayout), ing.PricePerUnit.StringFixed(2))
	}
}

func (r *REPL) printRecipes(rs []*domain.Recipe, empty string) {
	if len(rs) == 0 {
		r.println(empty)
		return
	}
	for _, recipe := range rs {
		r.printf("- %s (%d servings): %s\n", recipe.Name, recipe.Servings, recipe.Description)
	}
}

func (r *REPL) formatIngredient(ing domain.Ingredient) string {
	return fmt.Sprintf("%s: %s %s, best before %s, %s per %s",
		ing.Name, formatQuantity(ing.Quantity), ing.Unit,
		ing.BestBefore.Format(r.dateLayout), ing.PricePerUnit.StringFixed(2), ing.Unit)
}

// formatQuantity rounds to three decimals for display only.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(q*1000)/1000, 'f', -1, 64)
}

func (r *REPL) readLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

func (r *REPL) print(s string) {
	_, _ = io.WriteString(r.out, s)
}

func (r *REPL) println(s string) {
	_, _ = io.WriteString(r.out, s+"\n")
}

func (r *REPL) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
