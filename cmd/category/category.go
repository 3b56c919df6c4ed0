package category

import (
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewCategoryCmd(l *app.Loader) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Show expense categories and subcategories",
	}

	categoryCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}
			categories, err := a.Service.Reference.ListCategories()
			if err != nil {
				return err
			}
			return views.RenderCategoryList(categories)
		},
	})

	categoryCmd.AddCommand(&cobra.Command{
		Use:     "subcategories <category>",
		Aliases: []string{"sub"},
		Short:   "List the subcategories of a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}
			subs, err := a.Service.Reference.ListSubCategories(args[0])
			if err != nil {
				return err
			}
			return views.RenderSubCategoryList(args[0], subs)
		},
	})

	return categoryCmd
}

func NewCurrencyCmd(l *app.Loader) *cobra.Command {
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Show the currencies known to the database",
	}

	currencyCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List currencies with their stored rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}
			currencies, err := a.Service.Reference.ListCurrencies()
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderCurrencyList(currencies, base)
		},
	})

	return currencyCmd
}
