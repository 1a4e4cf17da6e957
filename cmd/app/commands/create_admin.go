package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/proxym/collabmanager/internal/app"
	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/config"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// RunCreateAdmin creates an administrator account from the command line.
// When the password flag is empty, the password is read from the IOTuple reader,
// which lets an operator pipe it in instead of leaving it in shell history.
func RunCreateAdmin(ctx context.Context, nom, email, password string, io IOTuple) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	if password == "" {
		var err error
		password, err = readPassword(io)
		if err != nil {
			return err
		}
	}

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.CreateUser(ctx, &userDomain.CreateUserInput{
		Nom:      nom,
		Email:    email,
		Password: password,
		Role:     authDomain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Fprintf(io.Writer, "Admin user created\n")
	fmt.Fprintf(io.Writer, "ID:    %s\n", user.ID)
	fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	return nil
}

// readPassword reads a single line from the reader and trims the trailing newline.
func readPassword(io IOTuple) (string, error) {
	fmt.Fprint(io.Writer, "Password: ")

	scanner := bufio.NewScanner(io.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("no password provided")
	}

	password := strings.TrimSpace(scanner.Text())
	if password == "" {
		return "", fmt.Errorf("no password provided")
	}

	return password, nil
}
