package utils

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSVFormat(t *testing.T) {
	payload, err := BuildCSV(
		[]string{"Nomor Tiket", "Nama Barang"},
		[][]string{{"BR-0001", "Kursi"}},
	)
	require.NoError(t, err)

	// diawali BOM UTF-8
	assert.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))

	body := string(bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "Nomor Tiket;Nama Barang\nBR-0001;Kursi\n", body)
}

func TestBuildCSVQuoting(t *testing.T) {
	rows := [][]string{
		{"mengandung;delimiter", `mengandung "kutip"`, "baris\nbaru"},
	}

	payload, err := BuildCSV([]string{"a", "b", "c"}, rows)
	require.NoError(t, err)

	body := string(bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))

	// field bermasalah dibungkus kutip ganda, kutip internal digandakan
	assert.Contains(t, body, `"mengandung;delimiter"`)
	assert.Contains(t, body, `"mengandung ""kutip"""`)
}

// Round-trip: hasil ekspor harus bisa dibaca balik parser CSV standar
// dan menghasilkan nilai field yang identik.
func TestBuildCSVRoundTrip(t *testing.T) {
	headers := []string{"kolom1", "kolom2", "kolom3"}
	rows := [][]string{
		{"biasa", "dengan;titik-koma", "akhir"},
		{`dengan "kutip"`, "multi\nbaris", "répàrasi"},
		{"", "kosong di awal", ";"},
	}

	payload, err := BuildCSV(headers, rows)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))))
	r.Comma = ';'

	parsed, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, len(rows)+1)

	assert.Equal(t, headers, parsed[0])
	for i, row := range rows {
		assert.Equal(t, row, parsed[i+1])
	}
}
