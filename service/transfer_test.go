package service

import (
	"bytes"
	"context"
	"testing"

	"genset/models"
	"genset/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type recordingNotifier struct {
	filenames []string
	summaries []ImportSummary
}

func (n *recordingNotifier) NotifyImport(filename string, summary ImportSummary) error {
	n.filenames = append(n.filenames, filename)
	n.summaries = append(n.summaries, summary)
	return nil
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func newTransfer(st *stubStore, n ImportNotifier) *TransferService {
	return NewTransferService(st, NewHistoryService(st), n)
}

func TestTransferService_ImportSkipsIncompleteRows(t *testing.T) {
	ctx := context.Background()
	st := newStubStore()
	notifier := &recordingNotifier{}
	svc := newTransfer(st, notifier)

	buf := workbook(t, [][]interface{}{
		{"tanggal", "uraian", "keterangan", "nama_genset"},
		{"2024-01-15", "Perawatan rutin", "", ""},
		{"2024-01-20", "Inspeksi tahunan", "Lengkap", "Genset Baru"},
	})

	summary, err := svc.Import(ctx, "riwayat.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, []int{2}, summary.SkippedLines)
	assert.Equal(t, 1, summary.GensetsCreated)

	require.Len(t, st.gensets, 1)
	assert.Equal(t, "Genset Baru", st.gensets[0].Name)
	require.Len(t, st.histories, 1)
	assert.Equal(t, "Lengkap", st.histories[0].NotesText())
	assert.Equal(t, "2024-01-20", st.histories[0].DateValue().Format(models.DateLayout))

	require.Len(t, notifier.summaries, 1)
	assert.Equal(t, "riwayat.xlsx", notifier.filenames[0])
	assert.Equal(t, summary, notifier.summaries[0])
}

func TestTransferService_ImportReusesUnitsAndReportsBadDates(t *testing.T) {
	ctx := context.Background()
	st := newStubStore("Genset A")
	svc := newTransfer(st, nil)

	buf := workbook(t, [][]interface{}{
		{"Tanggal", "Nama Genset", "Uraian", "Keterangan"},
		{45306, "Genset A", "Perawatan rutin", "Serial"},
		{"kemarin", "Genset A", "Tanggal salah", ""},
		{"20/01/2024", "Genset A", "Ganti filter", ""},
	})

	summary, err := svc.Import(ctx, "a.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.GensetsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 3, summary.Errors[0].Line)

	assert.Len(t, st.gensets, 1)
	require.Len(t, st.histories, 2)
	assert.Equal(t, "2024-01-15", st.histories[0].DateValue().Format(models.DateLayout))
	assert.Equal(t, "2024-01-20", st.histories[1].DateValue().Format(models.DateLayout))
}

func TestTransferService_ImportAbortsOnStoreError(t *testing.T) {
	ctx := context.Background()
	st := newStubStore()
	st.failCreateHistory = errStoreDown
	notifier := &recordingNotifier{}
	svc := newTransfer(st, notifier)

	buf := workbook(t, [][]interface{}{
		{"tanggal", "uraian", "nama_genset"},
		{"2024-01-15", "Perawatan rutin", "Genset A"},
		{"2024-01-16", "Perawatan rutin", "Genset A"},
	})

	summary, err := svc.Import(ctx, "a.xlsx", buf)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, summary.TotalRows)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Imported)
	assert.Len(t, notifier.summaries, 1)
}

func TestTransferService_ImportRejectsGarbage(t *testing.T) {
	svc := newTransfer(newStubStore(), nil)

	_, err := svc.Import(context.Background(), "x.xlsx", bytes.NewReader([]byte("plain text")))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTransferService_ExportFilename(t *testing.T) {
	ctx := context.Background()
	st := newStubStore("Genset A - 100 KVA")
	genA := st.genset("Genset A - 100 KVA")
	svc := newTransfer(st, nil)

	_, err := svc.histories.Create(ctx, HistoryInput{Date: day("2024-01-15"), Description: "Ganti oli", Units: UnitSelection{IDs: []string{genA.ID}}})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	name, err := svc.Export(ctx, buf, ListFilter{Search: "oli", GensetID: genA.ID}, false)
	require.NoError(t, err)
	assert.Equal(t, "riwayat-genset.xlsx", name)

	name, err = svc.Export(ctx, new(bytes.Buffer), ListFilter{GensetID: genA.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, "riwayat-genset-genset-a-100-kva.xlsx", name)

	name, err = svc.Export(ctx, new(bytes.Buffer), ListFilter{GensetID: "gone", Search: "oli"}, true)
	require.NoError(t, err)
	assert.Equal(t, "riwayat-genset-search-oli.xlsx", name)

	name, err = svc.Export(ctx, new(bytes.Buffer), ListFilter{GensetID: AllUnits}, true)
	require.NoError(t, err)
	assert.Equal(t, "riwayat-genset.xlsx", name)

	wb, err := spreadsheet.Decode(buf)
	require.NoError(t, err)
	require.Len(t, wb.Records, 1)
	assert.Equal(t, "Genset A - 100 KVA", wb.Records[0].Get(spreadsheet.KeyNamaGenset))
}

func TestTransferService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newStubStore()
	_, err := Seed(ctx, src)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	_, err = newTransfer(src, nil).Export(ctx, buf, ListFilter{}, false)
	require.NoError(t, err)

	dst := newStubStore()
	summary, err := newTransfer(dst, nil).Import(ctx, "export.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Imported)
	assert.Equal(t, 3, summary.GensetsCreated)

	want, err := NewHistoryService(src).List(ctx, ListFilter{})
	require.NoError(t, err)
	got, err := NewHistoryService(dst).List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].DateValue(), got[i].DateValue())
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].NotesText(), got[i].NotesText())
		assert.Equal(t, want[i].Genset.Name, got[i].Genset.Name)
	}
}
