package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
)

var importCoursesCmd = &cobra.Command{
	Use:   "import-courses <file.xlsx>",
	Short: "Create or update course bank entries from a spreadsheet",
	Long: `Reads the first sheet of an .xlsx workbook. Row 1 is the header and must
name the Subject, Number and Name columns; Credits, Description, Prerequisites,
Corequisites and Tags are optional. Existing courses with the same code are
updated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		courses := service.NewCourseService(repository.NewRepository(e.db), e.logger)
		rows, err := courses.ParseImportFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		result, err := courses.ImportCourses(context.Background(), rows, "")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "imported %d of %d rows\n", result.Success, result.Total)
		if result.Failed > 0 {
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROW\tREASON")
			for _, ie := range result.Errors {
				fmt.Fprintf(w, "%d\t%s\n", ie.Row, ie.Reason)
			}
			w.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCoursesCmd)
}
