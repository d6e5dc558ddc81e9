package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jamesainslie/tidy/pkg/tidy/category"
	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/walker"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage extension categories",
	Long: `Manage the extension-to-category mapping used by the type mode.

The mapping is stored as a JSON document. The Others category always
exists and receives files whose extension is not categorized.`,
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their extensions",
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an empty category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a category and its extensions",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesRemove,
}

var categoriesRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category, keeping its extensions",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoriesRename,
}

var categoriesAddExtCmd = &cobra.Command{
	Use:   "add-ext <category> <ext>...",
	Short: "Add extensions to a category",
	Long: `Add one or more extensions to a category. Extensions are normalized
to lowercase with a leading dot. An extension already assigned to
another category is moved.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCategoriesAddExt,
}

var categoriesRemoveExtCmd = &cobra.Command{
	Use:   "remove-ext <category> <ext>...",
	Short: "Remove extensions from a category",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCategoriesRemoveExt,
}

var categoriesDetectCmd = &cobra.Command{
	Use:   "detect <dir>",
	Short: "Scan a folder and tally its file extensions",
	Long: `Detect walks a folder, counts the file extensions it finds, and marks
which ones are not yet categorized. Useful for building categories
that match an existing collection.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriesDetect,
}

var categoriesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a category document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesImport,
}

var categoriesExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the category document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesExport,
}

var categoriesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset categories to the built-in defaults",
	RunE:  runCategoriesReset,
}

var (
	detectRecursive bool
	importMerge     bool
)

func init() {
	categoriesDetectCmd.Flags().BoolVarP(&detectRecursive, "recursive", "r", true, "descend into subdirectories")
	categoriesImportCmd.Flags().BoolVar(&importMerge, "merge", false, "merge into existing categories instead of replacing them")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRemoveCmd)
	categoriesCmd.AddCommand(categoriesRenameCmd)
	categoriesCmd.AddCommand(categoriesAddExtCmd)
	categoriesCmd.AddCommand(categoriesRemoveExtCmd)
	categoriesCmd.AddCommand(categoriesDetectCmd)
	categoriesCmd.AddCommand(categoriesImportCmd)
	categoriesCmd.AddCommand(categoriesExportCmd)
	categoriesCmd.AddCommand(categoriesResetCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// getStore returns the category store at the configured path.
func getStore() (*category.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return category.NewStore(cfg.Categories.Path, logging.Get("category"))
}

// mutateCategories loads the map, applies fn, and saves the result.
func mutateCategories(fn func(category.Map) error) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	m := store.Load()
	if err := fn(m); err != nil {
		return err
	}
	return store.Save(m)
}

func runCategoriesList(_ *cobra.Command, _ []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	m := store.Load()

	for _, cat := range m.Names() {
		exts := append([]string(nil), m[cat]...)
		sort.Strings(exts)
		printInfo("%s (%d)", cat, len(exts))
		if len(exts) > 0 {
			printInfo("  %s", strings.Join(exts, " "))
		}
	}
	return nil
}

func runCategoriesAdd(_ *cobra.Command, args []string) error {
	return mutateCategories(func(m category.Map) error {
		return m.AddCategory(args[0])
	})
}

func runCategoriesRemove(_ *cobra.Command, args []string) error {
	return mutateCategories(func(m category.Map) error {
		return m.RemoveCategory(args[0])
	})
}

func runCategoriesRename(_ *cobra.Command, args []string) error {
	return mutateCategories(func(m category.Map) error {
		return m.RenameCategory(args[0], args[1])
	})
}

func runCategoriesAddExt(_ *cobra.Command, args []string) error {
	return mutateCategories(func(m category.Map) error {
		for _, ext := range args[1:] {
			if err := m.AddExtension(args[0], ext); err != nil {
				return err
			}
		}
		return nil
	})
}

func runCategoriesRemoveExt(_ *cobra.Command, args []string) error {
	return mutateCategories(func(m category.Map) error {
		for _, ext := range args[1:] {
			if err := m.RemoveExtension(args[0], ext); err != nil {
				return err
			}
		}
		return nil
	})
}

func runCategoriesDetect(_ *cobra.Command, args []string) error {
	dir, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}

	counts, err := walker.CountExtensions(dir, detectRecursive, logging.Get("walker"))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(counts) == 0 {
		printInfo("No file extensions found under %s", dir)
		return nil
	}

	store, err := getStore()
	if err != nil {
		return err
	}
	m := store.Load()

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	// Most frequent first; ties alphabetical.
	sort.Slice(exts, func(i, j int) bool {
		if counts[exts[i]] != counts[exts[j]] {
			return counts[exts[i]] > counts[exts[j]]
		}
		return exts[i] < exts[j]
	})

	for _, ext := range exts {
		if cat := m.FindExtension(ext); cat != "" {
			printInfo("%-10s %5d  (%s)", ext, counts[ext], cat)
		} else {
			printInfo("%-10s %5d  (uncategorized)", ext, counts[ext])
		}
	}
	return nil
}

func runCategoriesImport(_ *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}
	m, err := store.Import(path, importMerge)
	if err != nil {
		return err
	}
	printInfo("Imported %d categories from %s", len(m), path)
	return nil
}

func runCategoriesExport(_ *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}
	if err := store.Export(path); err != nil {
		return err
	}
	printInfo("Exported categories to %s", path)
	return nil
}

func runCategoriesReset(_ *cobra.Command, _ []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	if err := store.Save(category.Defaults()); err != nil {
		return err
	}
	printInfo("Categories reset to defaults")
	return nil
}
