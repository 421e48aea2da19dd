package redirect

import (
	"bytes"
	"net/http"
)

// notFoundWriter segura um 404 do próximo handler (header e corpo) para que
// o middleware decida entre redirecionar ou devolver o 404 original.
// Qualquer outro status passa direto.
type notFoundWriter struct {
	http.ResponseWriter
	wroteHeader bool
	notFound    bool
	body        bytes.Buffer
}

func (w *notFoundWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	// 1xx (ex: 103 Early Hints) não é a resposta final; 101 é.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.wroteHeader = true
	if code == http.StatusNotFound {
		w.notFound = true
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *notFoundWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.notFound {
		return w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *notFoundWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.notFound {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *notFoundWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
