package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/elimulabs/elimu"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/auth"
	"github.com/elimulabs/elimu/core/course"
	"github.com/elimulabs/elimu/core/learn"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNoSession   = errors.New("not signed in; run `elimu login` first")
	errNoSelection = errors.New("course not found in catalog")
)

type commandLine struct {
	app *elimu.App
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL          - sign in; the password is prompted next")
	fmt.Println("  logout                      - clear the stored session")
	fmt.Println("  whoami                      - show the signed-in user")
	fmt.Println("  courses                     - browse the course catalog")
	fmt.Println("  my-courses                  - list enrolled courses with progress")
	fmt.Println("  enroll -course ID           - enroll in a catalog course")
	fmt.Println("  dashboard                   - show the learner dashboard")
	fmt.Println("  chat -message TEXT [-mode internal|external] - ask the assistant")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The account email. The password will be prompted next.")

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	enrollCourse := enrollCmd.Int("course", 0, "The catalog course ID to enroll in.")

	chatCmd := flag.NewFlagSet("chat", flag.ExitOnError)
	chatMessage := chatCmd.String("message", "", "The message to send to the assistant.")
	chatMode := chatCmd.String("mode", cli.app.Conf.ChatMode, "Assistant mode: internal | external.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return err
		}
		return cli.login(ctx, *loginEmail, string(pwd))
	case "logout":
		cli.app.Auth.Logout()
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return cli.whoami()
	case "courses":
		return cli.courses(ctx)
	case "my-courses":
		return cli.myCourses(ctx)
	case "enroll":
		if err := enrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollCourse == 0 {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(ctx, *enrollCourse)
	case "dashboard":
		return cli.dashboard(ctx)
	case "chat":
		if err := chatCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *chatMessage == "" {
			chatCmd.Usage()
			return errHelp
		}
		return cli.chat(ctx, *chatMessage, *chatMode)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, email, password string) error {
	landed, err := cli.app.Auth.Login(ctx, auth.LoginForm{Email: email, Password: password})
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			for _, fe := range vErr.Fields {
				fmt.Printf("  %s: %s\n", fe.Field, fe.Error)
			}
			return errors.New("invalid input")
		}
		return err
	}
	sess, _ := cli.app.Store.Get()
	fmt.Printf("Signed in as %s (%s). Landing: %s\n", sess.DisplayName, sess.Role, landed)
	return nil
}

func (cli *commandLine) whoami() error {
	sess, ok := cli.app.Store.Get()
	if !ok {
		return errNoSession
	}
	fmt.Printf("%s <%s> role=%s id=%s\n", sess.DisplayName, sess.Email, sess.Role, sess.UserID)
	return nil
}

func (cli *commandLine) courses(ctx context.Context) error {
	ctrl := course.NewCatalogController(cli.app.Gateway, cli.app.Nav, cli.app.Log)
	defer ctrl.Close()
	if err := ctrl.Load(ctx); err != nil {
		return cli.relogin(err)
	}
	for _, crs := range ctrl.Courses() {
		marker := " "
		if crs.IsEnrolled {
			marker = "*"
		}
		fmt.Printf("%s %4d  %-40s %s\n", marker, crs.ID, crs.Title, crs.Level)
	}
	return nil
}

func (cli *commandLine) myCourses(ctx context.Context) error {
	ctrl := course.NewMyCoursesController(cli.app.Gateway, cli.app.Log)
	defer ctrl.Close()
	if err := ctrl.Load(ctx); err != nil {
		return cli.relogin(err)
	}
	for _, crs := range ctrl.Courses() {
		fmt.Printf("%4d  %-40s %3d%% (%d/%d lessons)\n",
			crs.ID, crs.Title, crs.ProgressPercentage, crs.CompletedLessons, crs.TotalLessons)
	}
	return nil
}

func (cli *commandLine) enroll(ctx context.Context, courseID int) error {
	ctrl := course.NewCatalogController(cli.app.Gateway, cli.app.Nav, cli.app.Log)
	defer ctrl.Close()
	if err := ctrl.Load(ctx); err != nil {
		return cli.relogin(err)
	}
	if !ctrl.Select(courseID) {
		return errNoSelection
	}
	if err := ctrl.Enroll(ctx); err != nil {
		return cli.relogin(err)
	}
	fmt.Printf("Enrolled in course %d. Landing: %s\n", courseID, cli.app.Nav.Current())
	return nil
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	ctrl := learn.NewDashboardController(cli.app.Gateway, cli.app.Log)
	defer ctrl.Close()
	if err := ctrl.Load(ctx); err != nil {
		return cli.relogin(err)
	}
	data := ctrl.Data()
	fmt.Printf("%s (%d day streak)\n", data.User.Name, data.User.Streak)
	fmt.Printf("Enrolled: %d  Completed lessons: %d  Overall: %d%%\n",
		data.Stats.EnrolledCourses, data.Stats.CompletedLessons, data.OverallProgress())
	for _, crs := range data.Courses {
		fmt.Printf("  %-40s %3d%%\n", crs.Title, crs.Progress)
	}
	return nil
}

func (cli *commandLine) chat(ctx context.Context, message, mode string) error {
	if _, ok := cli.app.Store.Get(); !ok {
		return errNoSession
	}
	cli.app.Resume() // the overlay is hidden until an authenticated route mounts
	cli.app.Chat.SetMode(mode)
	cli.app.Chat.Open(ctx)
	cli.app.Chat.Send(ctx, message)

	msgs := cli.app.Chat.Messages()
	if len(msgs) == 0 {
		return nil
	}
	last := msgs[len(msgs)-1]
	fmt.Println(strings.TrimSpace(last.Response))
	return nil
}

// relogin converts an auth failure into the standard clear-and-redirect,
// mirroring what every page does with an Unauthorized gateway error.
func (cli *commandLine) relogin(err error) error {
	if cli.app.Auth.ForceRelogin(err) {
		return errNoSession
	}
	return err
}
