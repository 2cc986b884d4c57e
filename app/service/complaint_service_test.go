package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubComplaintRepo struct {
	created  *model.Complaint
	byID     *model.Complaint
	byLookup *model.Complaint
	updated  *model.Complaint
	all      []model.Complaint

	deleteRows int64
}

func (f *stubComplaintRepo) CreateWithTicket(c *model.Complaint) error {
	c.TicketNumber = "BR-0001"
	c.ComplaintCode = "AB12C"
	f.created = c
	return nil
}

func (f *stubComplaintRepo) FindAll(filter repository.ComplaintFilter) ([]model.Complaint, error) {
	return f.all, nil
}

func (f *stubComplaintRepo) FindByID(id uuid.UUID) (*model.Complaint, error) {
	if f.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.byID, nil
}

func (f *stubComplaintRepo) FindByLookup(q string) (*model.Complaint, error) {
	if f.byLookup == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.byLookup, nil
}

func (f *stubComplaintRepo) Update(c *model.Complaint) error {
	f.updated = c
	return nil
}

func (f *stubComplaintRepo) Delete(id uuid.UUID) (int64, error) {
	return f.deleteRows, nil
}

func (f *stubComplaintRepo) CountByStatus() (map[string]int64, error) {
	return map[string]int64{}, nil
}

type stubEventRepo struct {
	appended  []model.ComplaintEvent
	events    []model.ComplaintEvent
	appendErr error
}

func (f *stubEventRepo) Append(ctx context.Context, ev *model.ComplaintEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, *ev)
	return nil
}

func (f *stubEventRepo) FindByComplaintID(ctx context.Context, complaintID uuid.UUID) ([]model.ComplaintEvent, error) {
	return f.events, nil
}

func (f *stubEventRepo) DeleteByComplaintID(ctx context.Context, complaintID uuid.UUID) error {
	return nil
}

func newComplaintTestService(complaintRepo *stubComplaintRepo, eventRepo *stubEventRepo) ComplaintService {
	// storage nil: upload foto dilewati, signed URL kosong
	return NewComplaintService(complaintRepo, eventRepo, nil)
}

func TestSubmitCreatesPendingComplaint(t *testing.T) {
	complaintRepo := &stubComplaintRepo{}
	eventRepo := &stubEventRepo{}
	svc := newComplaintTestService(complaintRepo, eventRepo)

	body := strings.NewReader(`{
		"reporterName": "Budi",
		"department": "IT",
		"itemName": "Kursi",
		"quantity": 2
	}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, complaintRepo.created)

	// baris baru selalu pending dengan processed_at nil
	assert.Equal(t, model.ComplaintPending, complaintRepo.created.Status)
	assert.Nil(t, complaintRepo.created.ProcessedAt)
	assert.False(t, complaintRepo.created.ReportedAt.IsZero())

	// respons membawa nomor tiket + kode pengaduan
	assert.Contains(t, w.Body.String(), "BR-0001")
	assert.Contains(t, w.Body.String(), "AB12C")

	// event pertama di timeline: pending
	require.Len(t, eventRepo.appended, 1)
	assert.Equal(t, model.ComplaintPending, eventRepo.appended[0].Status)
}

// Mongo tumbang tidak boleh membatalkan komplain yang sudah tersimpan di
// Postgres; kegagalan menulis timeline bersifat best-effort.
func TestSubmitSucceedsWhenTimelineWriteFails(t *testing.T) {
	complaintRepo := &stubComplaintRepo{}
	eventRepo := &stubEventRepo{appendErr: errors.New("mongo down")}
	svc := newComplaintTestService(complaintRepo, eventRepo)

	body := strings.NewReader(`{
		"reporterName": "Budi",
		"department": "IT",
		"itemName": "Kursi",
		"quantity": 2
	}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, complaintRepo.created)
	assert.Contains(t, w.Body.String(), "BR-0001")
}

func TestSubmitQuantityValidation(t *testing.T) {
	svc := newComplaintTestService(&stubComplaintRepo{}, &stubEventRepo{})

	for _, quantity := range []string{"0", "100001", "-3"} {
		body := strings.NewReader(`{
			"reporterName": "Budi",
			"department": "IT",
			"itemName": "Kursi",
			"quantity": ` + quantity + `
		}`)
		c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

		svc.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, "quantity=%s", quantity)
	}
}

// Pencarian status publik tidak boleh membawa nama pelapor ataupun catatan
// admin, untuk input apa pun.
func TestLookupStatusRedaction(t *testing.T) {
	now := time.Now()
	complaintRepo := &stubComplaintRepo{
		byLookup: &model.Complaint{
			ID:            uuid.New(),
			TicketNumber:  "BR-0001",
			ComplaintCode: "AB12C",
			ReporterName:  "Budi Rahasia",
			Department:    "IT",
			ItemName:      "Kursi",
			Quantity:      2,
			Status:        model.ComplaintPending,
			ReportedAt:    now,
			AdminNote:     "catatan internal",
		},
	}
	eventRepo := &stubEventRepo{
		events: []model.ComplaintEvent{
			{Status: model.ComplaintPending, Note: "catatan internal", Actor: "admin1", CreatedAt: now},
		},
	}
	svc := newComplaintTestService(complaintRepo, eventRepo)

	c, w := testContext(t, http.MethodGet, "/?q=AB12C", nil, "", uuid.Nil)

	svc.LookupStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Kursi")
	assert.Contains(t, body, `"status":"pending"`)

	// proyeksi tersaring: tidak ada jejak PII / catatan internal
	assert.NotContains(t, body, "Budi Rahasia")
	assert.NotContains(t, body, "catatan internal")
	assert.NotContains(t, body, "reporterName")
	assert.NotContains(t, body, "adminNote")
	assert.NotContains(t, body, "admin1")
}

func TestLookupStatusEmptyQuery(t *testing.T) {
	svc := newComplaintTestService(&stubComplaintRepo{}, &stubEventRepo{})

	c, w := testContext(t, http.MethodGet, "/?q=%20%20", nil, "", uuid.Nil)
	svc.LookupStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupStatusNotFound(t *testing.T) {
	svc := newComplaintTestService(&stubComplaintRepo{}, &stubEventRepo{})

	c, w := testContext(t, http.MethodGet, "/?q=ZZZZZ", nil, "", uuid.Nil)
	svc.LookupStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Invariant processed_at: nil selama pending, terisi begitu status keluar
// dari pending, completed_at menyusul saat completed.
func TestUpdateStatusTimestamps(t *testing.T) {
	complaintRepo := &stubComplaintRepo{
		byID: &model.Complaint{
			ID:           uuid.New(),
			TicketNumber: "BR-0001",
			Status:       model.ComplaintPending,
			ReportedAt:   time.Now(),
		},
	}
	eventRepo := &stubEventRepo{}
	svc := newComplaintTestService(complaintRepo, eventRepo)

	// pending -> processing
	body := strings.NewReader(`{"status":"processing"}`)
	c, w := testContext(t, http.MethodPut, "/", body, utils.RoleAdmin, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: complaintRepo.byID.ID.String()}}

	svc.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, complaintRepo.updated)
	assert.Equal(t, model.ComplaintProcessing, complaintRepo.updated.Status)
	assert.NotNil(t, complaintRepo.updated.ProcessedAt)
	assert.Nil(t, complaintRepo.updated.CompletedAt)

	require.Len(t, eventRepo.appended, 1)
	assert.Equal(t, model.ComplaintProcessing, eventRepo.appended[0].Status)

	// processing -> completed
	body = strings.NewReader(`{"status":"completed"}`)
	c, w = testContext(t, http.MethodPut, "/", body, utils.RoleAdmin, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: complaintRepo.byID.ID.String()}}

	svc.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ComplaintCompleted, complaintRepo.updated.Status)
	assert.NotNil(t, complaintRepo.updated.CompletedAt)

	// completed -> pending mengosongkan keduanya
	body = strings.NewReader(`{"status":"pending"}`)
	c, w = testContext(t, http.MethodPut, "/", body, utils.RoleAdmin, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: complaintRepo.byID.ID.String()}}

	svc.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, complaintRepo.updated.ProcessedAt)
	assert.Nil(t, complaintRepo.updated.CompletedAt)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	complaintRepo := &stubComplaintRepo{
		byID: &model.Complaint{ID: uuid.New(), Status: model.ComplaintPending},
	}
	svc := newComplaintTestService(complaintRepo, &stubEventRepo{})

	body := strings.NewReader(`{"status":"selesai"}`)
	c, w := testContext(t, http.MethodPut, "/", body, utils.RoleAdmin, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: complaintRepo.byID.ID.String()}}

	svc.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, complaintRepo.updated)
}

// viewer read-only: semua jalur tulis ditolak sebelum menyentuh store.
func TestViewerCannotWrite(t *testing.T) {
	complaintRepo := &stubComplaintRepo{deleteRows: 1}
	svc := newComplaintTestService(complaintRepo, &stubEventRepo{})

	c, w := testContext(t, http.MethodDelete, "/", nil, utils.RoleViewer, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	svc.Delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	body := strings.NewReader(`{"reporterName":"x","department":"IT","itemName":"Kursi","quantity":1}`)
	c, w = testContext(t, http.MethodPost, "/", body, utils.RoleViewer, uuid.New())

	svc.Create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, complaintRepo.created)
}

func TestDeleteComplaintNotFound(t *testing.T) {
	svc := newComplaintTestService(&stubComplaintRepo{deleteRows: 0}, &stubEventRepo{})

	c, w := testContext(t, http.MethodDelete, "/", nil, utils.RoleAdmin, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	svc.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllPaginates(t *testing.T) {
	all := make([]model.Complaint, 25)
	for i := range all {
		all[i] = model.Complaint{ID: uuid.New(), TicketNumber: utils.FormatTicketNumber(i + 1)}
	}
	svc := newComplaintTestService(&stubComplaintRepo{all: all}, &stubEventRepo{})

	c, w := testContext(t, http.MethodGet, "/?page=3", nil, utils.RoleViewer, uuid.New())

	svc.GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"totalPages":3`)
	assert.Contains(t, body, `"totalItems":25`)
	// halaman 3 berisi item ke-21..25
	assert.Contains(t, body, "BR-0021")
	assert.NotContains(t, body, `"BR-0020"`)
}
