package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	if err := cli.auth.ResetPassword(context.Background(), email, pwd); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "password of %s has been reset\n", email)
	return nil
}
