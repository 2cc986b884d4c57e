package utils

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM di depan file supaya Excel (khususnya locale Indonesia) mendeteksi
// encoding dengan benar.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BuildCSV menghasilkan file CSV sesuai format ekspor SIPebaru:
// UTF-8 ber-BOM, delimiter titik-koma, dan field yang mengandung
// delimiter/kutip/newline dibungkus kutip ganda (kutip internal digandakan).
func BuildCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
