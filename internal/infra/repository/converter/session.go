package converter

import (
	"encoding/json"

	"session-booking/internal/domain/session"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func TemplateToCreateParams(t *session.Template) (sqlc.CreateSessionTemplateParams, error) {
	inventory, err := json.Marshal(t.Inventory())
	if err != nil {
		return sqlc.CreateSessionTemplateParams{}, errs.Wrap(err, "encode inventory")
	}
	return sqlc.CreateSessionTemplateParams{
		ID:               t.ID(),
		RestaurantID:     t.RestaurantID(),
		Name:             t.Name(),
		StartTime:        pgconv.MinutesToPgtime(t.Start().Minutes()),
		EndTime:          pgconv.MinutesToPgtime(t.End().Minutes()),
		WeekdayMask:      t.Weekdays().Mask(),
		DefaultInventory: inventory,
		IsActive:         t.IsActive(),
		Lifecycle:        string(t.Lifecycle()),
		CreatedAt:        pgconv.TimeToPgtype(t.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(t.UpdatedAt()),
	}, nil
}

func TemplateFromRow(row sqlc.SessionTemplates) (*session.Template, error) {
	var lines []session.InventoryLine
	if err := json.Unmarshal(row.DefaultInventory, &lines); err != nil {
		return nil, errs.Wrap(err, "decode inventory")
	}
	lifecycle, err := session.ParseLifecycle(row.Lifecycle)
	if err != nil {
		return nil, err
	}

	return session.ReconstructTemplate(
		row.ID,
		row.RestaurantID,
		row.Name,
		session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime)),
		session.TimeOfDay(pgconv.MinutesFromPgtime(row.EndTime)),
		session.WeekdaySetFromMask(row.WeekdayMask),
		session.Inventory(lines),
		row.IsActive,
		lifecycle,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func InstanceToInsertParams(inst *session.Instance) sqlc.InsertSessionInstanceParams {
	return sqlc.InsertSessionInstanceParams{
		ID:           inst.ID(),
		TemplateID:   inst.TemplateID(),
		RestaurantID: inst.RestaurantID(),
		ServiceDate:  pgconv.DateToPgtype(inst.ServiceDate()),
		StartTime:    pgconv.MinutesToPgtime(inst.Start().Minutes()),
		EndTime:      pgconv.MinutesToPgtime(inst.End().Minutes()),
		Status:       inst.Status().String(),
		Lifecycle:    string(inst.Lifecycle()),
		CreatedAt:    pgconv.TimeToPgtype(inst.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(inst.UpdatedAt()),
	}
}

func InstanceFromRow(row sqlc.SessionInstances) (*session.Instance, error) {
	status, err := session.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	lifecycle, err := session.ParseLifecycle(row.Lifecycle)
	if err != nil {
		return nil, err
	}

	return session.ReconstructInstance(
		row.ID,
		row.TemplateID,
		row.RestaurantID,
		pgconv.DateFromPgtype(row.ServiceDate),
		session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime)),
		session.TimeOfDay(pgconv.MinutesFromPgtime(row.EndTime)),
		status,
		lifecycle,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

// BucketRow is the column set shared by every bucket query.
type BucketRow struct {
	ID                uuid.UUID
	SessionInstanceID uuid.UUID
	Capacity          int32
	TotalUnits        int32
	AssignedUnits     int32
	CreatedSeq        int64
}

func BucketFromRow(row BucketRow) (*session.Bucket, error) {
	return session.ReconstructBucket(
		row.ID,
		row.SessionInstanceID,
		int(row.Capacity),
		int(row.TotalUnits),
		int(row.AssignedUnits),
		row.CreatedSeq,
	)
}
