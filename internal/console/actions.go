package console

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-records/internal/validation"
)

func (c *Console) addPatient(ctx context.Context) error {
	name, err := c.prompt("Name: ")
	if err != nil {
		return err
	}
	age, err := c.prompt("Age: ")
	if err != nil {
		return err
	}
	gender, err := c.prompt("Gender (M/F/Other/O, optional): ")
	if err != nil {
		return err
	}

	id, err := c.svcs.Patients.Create(ctx, name, age, gender)
	if err != nil {
		return err
	}
	c.printf("Patient added with ID: %d\n", id)
	return nil
}

func (c *Console) viewPatients(ctx context.Context) error {
	patients, err := c.svcs.Patients.List(ctx)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		c.println("No patients found")
	}
	for _, p := range patients {
		c.println(p.String())
	}
	return nil
}

func (c *Console) searchPatients(ctx context.Context) error {
	text, err := c.prompt("Search name substring: ")
	if err != nil {
		return err
	}
	patients, err := c.svcs.Patients.Search(ctx, text)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		c.println("No patients found")
	}
	for _, p := range patients {
		c.println(p.String())
	}
	return nil
}

func (c *Console) updatePatient(ctx context.Context) error {
	id, err := c.promptID("ID: ")
	if err != nil {
		return err
	}
	name, err := c.prompt("Name: ")
	if err != nil {
		return err
	}
	age, err := c.prompt("Age: ")
	if err != nil {
		return err
	}
	gender, err := c.prompt("Gender (M/F/Other/O, optional): ")
	if err != nil {
		return err
	}

	ok, err := c.svcs.Patients.Update(ctx, id, name, age, gender)
	if err != nil {
		return err
	}
	c.report(ok, "Updated")
	return nil
}

func (c *Console) deletePatient(ctx context.Context) error {
	id, err := c.promptID("ID to delete: ")
	if err != nil {
		return err
	}
	ok, err := c.svcs.Patients.Delete(ctx, id)
	if err != nil {
		return err
	}
	c.report(ok, "Deleted")
	return nil
}

func (c *Console) addDoctor(ctx context.Context) error {
	name, err := c.prompt("Name: ")
	if err != nil {
		return err
	}
	specialty, err := c.prompt("Specialty: ")
	if err != nil {
		return err
	}

	id, err := c.svcs.Doctors.Create(ctx, name, specialty)
	if err != nil {
		return err
	}
	c.printf("Doctor added with ID: %d\n", id)
	return nil
}

func (c *Console) viewDoctors(ctx context.Context) error {
	doctors, err := c.svcs.Doctors.List(ctx)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		c.println("No doctors found")
	}
	for _, d := range doctors {
		c.println(d.String())
	}
	return nil
}

func (c *Console) searchDoctors(ctx context.Context) error {
	text, err := c.prompt("Specialty substring: ")
	if err != nil {
		return err
	}
	doctors, err := c.svcs.Doctors.Search(ctx, text)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		c.println("No doctors found")
	}
	for _, d := range doctors {
		c.println(d.String())
	}
	return nil
}

func (c *Console) updateDoctor(ctx context.Context) error {
	id, err := c.promptID("ID: ")
	if err != nil {
		return err
	}
	name, err := c.prompt("Name: ")
	if err != nil {
		return err
	}
	specialty, err := c.prompt("Specialty: ")
	if err != nil {
		return err
	}

	ok, err := c.svcs.Doctors.Update(ctx, id, name, specialty)
	if err != nil {
		return err
	}
	c.report(ok, "Updated")
	return nil
}

func (c *Console) deleteDoctor(ctx context.Context) error {
	id, err := c.promptID("ID to delete: ")
	if err != nil {
		return err
	}
	ok, err := c.svcs.Doctors.Delete(ctx, id)
	if err != nil {
		return err
	}
	c.report(ok, "Deleted")
	return nil
}

func (c *Console) scheduleAppointment(ctx context.Context) error {
	c.printf("Accepted date formats: %v\n", validation.DateTimeFormats())
	patientID, err := c.prompt("Patient ID: ")
	if err != nil {
		return err
	}
	doctorID, err := c.prompt("Doctor ID: ")
	if err != nil {
		return err
	}
	when, err := c.prompt("Scheduled At: ")
	if err != nil {
		return err
	}
	notes, err := c.prompt("Notes (optional): ")
	if err != nil {
		return err
	}

	id, err := c.svcs.Appointments.Schedule(ctx, patientID, doctorID, when, notes)
	if err != nil {
		return err
	}
	c.printf("Appointment scheduled with ID: %d\n", id)
	return nil
}

func (c *Console) viewUpcoming(ctx context.Context) error {
	appointments, err := c.svcs.Appointments.ListUpcoming(ctx)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		c.println("No upcoming appointments")
	}
	for _, a := range appointments {
		c.println(a.String())
	}
	return nil
}

func (c *Console) viewHistory(ctx context.Context) error {
	appointments, err := c.svcs.Appointments.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		c.println("No appointments found")
	}
	for _, a := range appointments {
		c.println(a.String())
	}
	return nil
}

func (c *Console) viewDetailed(ctx context.Context) error {
	details, err := c.svcs.Appointments.ListDetailed(ctx)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		c.println("No appointments found")
	}
	for _, d := range details {
		c.println(d.String())
	}
	return nil
}

func (c *Console) cancelAppointment(ctx context.Context) error {
	id, err := c.prompt("Appointment ID to cancel: ")
	if err != nil {
		return err
	}
	ok, err := c.svcs.Appointments.Cancel(ctx, id)
	if err != nil {
		return err
	}
	c.report(ok, "Cancelled")
	return nil
}

func (c *Console) promptID(label string) (int64, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	id, err := validation.ParseStrictInteger(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func (c *Console) report(ok bool, done string) {
	if ok {
		c.println(done)
		return
	}
	c.println("Not found")
}
