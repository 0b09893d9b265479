// Package exporter renders document tables for download.
//
// Two formats are supported: CSV with a UTF-8 BOM and Spanish column titles,
// and XLSX with the same table on the "Documentos" sheet. Both write to an
// io.Writer so HTTP handlers can stream the result straight to the client.
//
//	w, err := exporter.NewWriter(exporter.FormatXLSX, logger)
//	if err != nil {
//		return err
//	}
//	err = w.Write(ctx, rw, docs)
package exporter
