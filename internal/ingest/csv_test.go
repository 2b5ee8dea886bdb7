package ingest

import (
	"strings"
	"testing"
)

func TestReadCSVCommaDelimited(t *testing.T) {
	input := "Núm,Resumo,Estado\n100,login quebrado,Aberto\n101,relatório,Fechado\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["Núm"] != "100" || rows[0]["Resumo"] != "login quebrado" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestReadCSVSemicolonDelimited(t *testing.T) {
	input := "Núm;Resumo\n100;um;extra\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if rows[0]["Núm"] != "100" || rows[0]["Resumo"] != "um" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestReadCSVLatin1(t *testing.T) {
	// "Descrição" with ç (0xE7) and ã (0xE3) in ISO-8859-1.
	input := []byte("N\xfam,Resumo\n7,Descri\xe7\xe3o\n")

	rows, err := ReadCSV(strings.NewReader(string(input)))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if rows[0]["Núm"] != "7" {
		t.Errorf("latin-1 header not decoded: %v", rows[0])
	}
	if rows[0]["Resumo"] != "Descrição" {
		t.Errorf("latin-1 value = %q, want Descrição", rows[0]["Resumo"])
	}
}

func TestReadCSVSkipsEmptyLines(t *testing.T) {
	input := "Núm,Resumo\n1,a\n,\n2,b\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2 (blank line skipped)", len(rows))
	}
}

func TestRowsFromRecordsNoHeader(t *testing.T) {
	if _, err := RowsFromRecords(nil); err != ErrNoHeader {
		t.Errorf("err = %v, want ErrNoHeader", err)
	}
}

func TestRowsFromRecordsShortRecord(t *testing.T) {
	rows, err := RowsFromRecords([][]string{{"a", "b", "c"}, {"1", "2"}})
	if err != nil {
		t.Fatalf("RowsFromRecords: %v", err)
	}
	if rows[0]["c"] != "" {
		t.Errorf("missing trailing field = %q, want empty", rows[0]["c"])
	}
}
