// Package console implements the interactive, line-oriented front end of the
// hospital records manager.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-records/internal/model"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
)

type PatientService interface {
	Create(ctx context.Context, name, ageRaw, gender string) (int64, error)
	Update(ctx context.Context, id int64, name, ageRaw, gender string) (bool, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Search(ctx context.Context, text string) ([]*model.Patient, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type DoctorService interface {
	Create(ctx context.Context, name, specialty string) (int64, error)
	Update(ctx context.Context, id int64, name, specialty string) (bool, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Search(ctx context.Context, text string) ([]*model.Doctor, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type AppointmentService interface {
	Schedule(ctx context.Context, patientIDRaw, doctorIDRaw, scheduledRaw, notes string) (int64, error)
	ListUpcoming(ctx context.Context) ([]*model.Appointment, error)
	ListAll(ctx context.Context) ([]*model.Appointment, error)
	ListDetailed(ctx context.Context) ([]*model.AppointmentDetail, error)
	Cancel(ctx context.Context, idRaw string) (bool, error)
}

// Services groups the domain services the menu drives.
type Services struct {
	Patients     PatientService
	Doctors      DoctorService
	Appointments AppointmentService
}

// errInputClosed ends the session when input runs out mid-action.
var errInputClosed = errors.New("input closed")

type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context) error
}

type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	svcs    Services
	log     *logger.Logger
	session string
	items   []menuItem
}

func New(in io.Reader, out io.Writer, svcs Services, log *logger.Logger) *Console {
	if log == nil {
		log = logger.Nop()
	}
	c := &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		svcs:    svcs,
		session: uuid.NewString(),
	}
	c.log = log.WithFields(map[string]interface{}{"session_id": c.session})
	c.items = []menuItem{
		{"1", "Add Patient", c.addPatient},
		{"2", "View Patients", c.viewPatients},
		{"3", "Search Patients", c.searchPatients},
		{"4", "Update Patient", c.updatePatient},
		{"5", "Delete Patient", c.deletePatient},
		{"6", "Add Doctor", c.addDoctor},
		{"7", "View Doctors", c.viewDoctors},
		{"8", "Search Doctors by Specialty", c.searchDoctors},
		{"9", "Schedule Appointment", c.scheduleAppointment},
		{"10", "View Upcoming Appointments", c.viewUpcoming},
		{"11", "View Appointments (detailed)", c.viewDetailed},
		{"12", "Cancel Appointment", c.cancelAppointment},
		{"13", "Update Doctor", c.updateDoctor},
		{"14", "Delete Doctor", c.deleteDoctor},
		{"15", "View Appointment History", c.viewHistory},
	}
	return c
}

// Run shows the menu and executes choices until the user picks 0, input
// ends or ctx is cancelled. Errors from an action are printed and the loop
// carries on; only a failure to read input is returned.
func (c *Console) Run(ctx context.Context) error {
	c.log.Info("console session started")
	defer c.log.Info("console session ended")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		c.printMenu()
		choice, err := c.prompt("Enter choice: ")
		if err != nil {
			return c.inputErr(err)
		}
		choice = strings.TrimSpace(choice)
		if choice == "0" {
			c.println("Goodbye")
			return nil
		}

		item, ok := c.lookup(choice)
		if !ok {
			c.println("Invalid option")
			continue
		}

		if err := item.action(ctx); err != nil {
			if errors.Is(err, errInputClosed) {
				return c.inputErr(err)
			}
			c.log.Debug("menu action failed", "choice", choice, "error", err.Error())
			c.println(formatError(err))
		}
	}
}

func (c *Console) lookup(key string) (menuItem, bool) {
	for _, item := range c.items {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

func (c *Console) printMenu() {
	c.println("\n--- Hospital Management ---")
	for _, item := range c.items {
		c.printf("%s. %s\n", item.key, item.label)
	}
	c.println("0. Exit")
}

// prompt writes label and reads one line. It returns errInputClosed at EOF.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return c.in.Text(), nil
}

// inputErr turns end of input into a clean exit.
func (c *Console) inputErr(err error) error {
	if errors.Is(err, errInputClosed) {
		c.println("")
		return nil
	}
	return err
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}

// formatError renders err for the user, prefixed by its kind.
func formatError(err error) string {
	switch {
	case apperrors.IsConnection(err):
		return "Error: database unavailable: " + err.Error()
	case apperrors.IsValidation(err):
		return "Error: invalid input: " + err.Error()
	case apperrors.IsParse(err):
		return "Error: could not parse input: " + err.Error()
	case apperrors.IsStoreConstraint(err):
		if name := apperrors.ConstraintName(err); name != "" {
			return fmt.Sprintf("Error: rejected by database constraint %s: %v", name, err)
		}
		return "Error: rejected by database: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
