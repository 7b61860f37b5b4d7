package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage and join courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		courses, err := c.Courses(cmd.Context())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Join one with `studyctl courses join CODE`.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tJOIN CODE")
		for _, course := range courses {
			code := "-"
			if course.JoinCode != "" {
				code = course.JoinCode
				if course.JoinCodeEnabled != nil && !*course.JoinCodeEnabled {
					code += " (disabled)"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", course.ID, course.Title, course.Status, code)
		}
		return w.Flush()
	},
}

var courseDescription string

var coursesCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create a course (instructors only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		course, err := c.CreateCourse(cmd.Context(), args[0], courseDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Created %q (%s)\n", course.Title, course.ID)
		fmt.Printf("Join code: %s\n", course.JoinCode)
		return nil
	},
}

var coursesJoinCmd = &cobra.Command{
	Use:   "join CODE",
	Short: "Join a course with its join code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		course, err := c.JoinCourse(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Joined %q\n", course.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesJoinCmd)
	coursesCreateCmd.Flags().StringVar(&courseDescription, "description", "", "Course description")
}
