// internal/cli/cli.go
//
// Package cli 提供以行為單位的互動式選單：主選單（建立帳戶、登入、離開）
// 與登入後的帳戶選單（查詢餘額、存款、提款、轉帳、交易歷史、登出）。
//
// 輸入由單一 goroutine 讀入 channel，所有 Bank 操作都在 Run 的 goroutine 上執行，
// 因此 Bank 仍維持單執行緒使用。
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"pinbank/internal/bank"
)

// Operation names reported to the Recorder.
const (
	OpCreate   = "create"
	OpLogin    = "login"
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpTransfer = "transfer"
)

// Recorder 接收每次操作的結果，例如 metrics.Collector。
type Recorder interface {
	RecordOperation(operation string, err error)
	SetAccounts(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, error) {}
func (nopRecorder) SetAccounts(int)               {}

type Options struct {
	Logger   *slog.Logger
	Recorder Recorder
}

type CLI struct {
	bank   *bank.Bank
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	rec    Recorder

	lines <-chan string
}

func New(b *bank.Bank, in io.Reader, out io.Writer, opts Options) *CLI {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return &CLI{bank: b, in: in, out: out, logger: opts.Logger, rec: opts.Recorder}
}

// Run 執行主選單迴圈。選擇離開或輸入結束時回傳 nil；ctx 取消時回傳 ctx.Err()。
func (c *CLI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.lines = pump(ctx, c.in)
	c.rec.SetAccounts(c.bank.Len())

	c.println("Banking System")
	for {
		c.println("Main Menu")
		c.println("1) Create Account")
		c.println("2) Login")
		c.println("0) Exit")
		c.println("Choose:")

		choice, err := c.readLine(ctx)
		if err != nil {
			return endOfInput(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.createAccount(ctx)
		case "2":
			err = c.login(ctx)
		case "0":
			c.println("Bye!")
			return nil
		default:
			c.println("Invalid choice.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (c *CLI) createAccount(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter owner name:")
	if err != nil {
		return err
	}
	pin, err := c.prompt(ctx, "Set your PIN:")
	if err != nil {
		return err
	}

	acc, err := c.bank.CreateAccount(name, pin)
	c.rec.RecordOperation(OpCreate, err)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.rec.SetAccounts(c.bank.Len())
	c.logger.Debug("account created", slog.String("account", acc.ID()))

	c.println("☑️ Account created successfully!")
	c.println("Your Account ID is: " + acc.ID())
	return nil
}

func (c *CLI) login(ctx context.Context) error {
	id, err := c.prompt(ctx, "Enter Account ID:")
	if err != nil {
		return err
	}
	pin, err := c.prompt(ctx, "Enter PIN:")
	if err != nil {
		return err
	}

	acc, err := c.bank.Login(strings.TrimSpace(id), pin)
	c.rec.RecordOperation(OpLogin, err)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.println("☑️ Login successfully! Welcome, " + acc.Owner())
	return c.accountMenu(ctx, acc)
}

func (c *CLI) accountMenu(ctx context.Context, acc *bank.Account) error {
	for {
		c.println("")
		c.println("---Account Menu---")
		c.println("1) Check Balance")
		c.println("2) Deposit")
		c.println("3) Withdraw")
		c.println("4) Transfer")
		c.println("5) Show Transaction History")
		c.println("0) Logout")
		c.println("Choose:")

		choice, err := c.readLine(ctx)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.printf("Your balance: %d\n", acc.Balance())
		case "2":
			err = c.deposit(ctx, acc)
		case "3":
			err = c.withdraw(ctx, acc)
		case "4":
			err = c.transfer(ctx, acc)
		case "5":
			c.println("")
			c.println("---Transaction History---")
			for _, h := range acc.History() {
				c.println(h)
			}
		case "0":
			c.println("Logged out")
			return nil
		default:
			c.println("Invalid choice")
		}
		if err != nil {
			return err
		}
	}
}

func (c *CLI) deposit(ctx context.Context, acc *bank.Account) error {
	amount, err := c.promptAmount(ctx, "Enter deposit amount:")
	if err == nil {
		err = acc.Deposit(amount)
	}
	if isInputEnd(err) {
		return err
	}
	c.rec.RecordOperation(OpDeposit, err)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.logger.Debug("deposit", slog.String("account", acc.ID()), slog.Int64("amount", amount))
	c.printf("☑️ Deposit successful. New balance: %d\n", acc.Balance())
	return nil
}

func (c *CLI) withdraw(ctx context.Context, acc *bank.Account) error {
	amount, err := c.promptAmount(ctx, "Enter withdraw amount:")
	if err == nil {
		err = acc.Withdraw(amount)
	}
	if isInputEnd(err) {
		return err
	}
	c.rec.RecordOperation(OpWithdraw, err)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.logger.Debug("withdraw", slog.String("account", acc.ID()), slog.Int64("amount", amount))
	c.printf("☑️ Withdraw successful. New balance: %d\n", acc.Balance())
	return nil
}

func (c *CLI) transfer(ctx context.Context, acc *bank.Account) error {
	targetID, err := c.prompt(ctx, "Enter target account ID:")
	if err != nil {
		return err
	}
	amount, err := c.promptAmount(ctx, "Enter transfer amount:")
	if err == nil {
		err = acc.TransferTo(c.bank.FindAccount(strings.TrimSpace(targetID)), amount)
	}
	if isInputEnd(err) {
		return err
	}
	c.rec.RecordOperation(OpTransfer, err)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.logger.Debug("transfer",
		slog.String("account", acc.ID()),
		slog.String("target", strings.TrimSpace(targetID)),
		slog.Int64("amount", amount))
	c.printf("☑️ Transfer successful. Your new balance: %d\n", acc.Balance())
	return nil
}

func (c *CLI) prompt(ctx context.Context, label string) (string, error) {
	c.println(label)
	return c.readLine(ctx)
}

// promptAmount 讀取整數金額；無法解析時回傳包裝過的 bank.ErrInvalidAmount。
func (c *CLI) promptAmount(ctx context.Context, label string) (int64, error) {
	s, err := c.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", bank.ErrInvalidAmount, strings.TrimSpace(s))
	}
	return n, nil
}

func (c *CLI) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

func (c *CLI) fail(err error) {
	c.println("❌ " + err.Error())
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// pump 將 r 的每一行送入回傳的 channel，讀到結尾、錯誤或 ctx 結束時關閉 channel。
func pump(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func isInputEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// endOfInput 將輸入結束視為正常離開。
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
