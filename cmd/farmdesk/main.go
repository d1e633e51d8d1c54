// FarmDesk CLI — submits inquiries and drives the admin inbox over the API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farmdesk/backend/pkg/farmapi"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: farmdesk <command> [args]

Commands:
  submit <first> <last> <email> <subject> <message>   submit an inquiry (no login needed)
  login <email> <password>                             log in and store the token
  logout                                               discard the stored token
  me                                                   show the logged-in identity
  inbox [status]                                       list inquiries (admin), optionally filtered
  status <id> <new|read|replied|resolved>              update an inquiry's status (admin)
  rm <id>                                              delete an inquiry (admin)

Environment:
  FARMDESK_URL     API base URL (default http://localhost:8080/api)
  FARMDESK_CONFIG  config directory (default ~/.farmdesk)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	baseURL := os.Getenv("FARMDESK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	configDir := os.Getenv("FARMDESK_CONFIG")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".farmdesk")
	}

	client := farmapi.NewClient(baseURL, farmapi.NewFileTokenStore(filepath.Join(configDir, "token")))
	ctx := context.Background()

	switch os.Args[1] {
	case "submit":
		if len(os.Args) < 7 {
			fmt.Fprintln(os.Stderr, "Usage: farmdesk submit <first> <last> <email> <subject> <message>")
			os.Exit(1)
		}
		resp, err := client.CreateMessage(ctx, farmapi.CreateMessageParams{
			FirstName: os.Args[2],
			LastName:  os.Args[3],
			Email:     os.Args[4],
			Subject:   os.Args[5],
			Message:   os.Args[6],
		})
		exitOnError(err)
		fmt.Printf("Submitted: %s\n", resp.ID)

	case "login":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: farmdesk login <email> <password>")
			os.Exit(1)
		}
		resp, err := client.Login(ctx, os.Args[2], os.Args[3])
		exitOnError(err)
		fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)

	case "logout":
		exitOnError(client.Logout())
		fmt.Println("Logged out")

	case "me":
		user, err := client.Me(ctx)
		exitOnError(err)
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)

	case "inbox":
		messages, err := client.ListMessages(ctx)
		exitOnError(err)
		filter := ""
		if len(os.Args) > 2 {
			filter = os.Args[2]
		}
		for _, msg := range messages {
			if filter != "" && msg.Status != filter {
				continue
			}
			fmt.Printf("[%s] %-8s %s %s <%s>: %s\n",
				msg.CreatedAt.Format("2006-01-02 15:04"),
				msg.Status, msg.FirstName, msg.LastName, msg.Email, msg.Subject)
			fmt.Printf("  id=%s\n", msg.ID)
		}

	case "status":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: farmdesk status <id> <new|read|replied|resolved>")
			os.Exit(1)
		}
		resp, err := client.UpdateMessageStatus(ctx, os.Args[2], os.Args[3])
		exitOnError(err)
		fmt.Println(resp.Message)

	case "rm":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: farmdesk rm <id>")
			os.Exit(1)
		}
		resp, err := client.DeleteMessage(ctx, os.Args[2])
		exitOnError(err)
		fmt.Println(resp.Message)

	default:
		usage()
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
