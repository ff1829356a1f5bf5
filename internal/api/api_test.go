package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/rkonno1123-creator/bougu-check-app/internal/service/excel"
	"github.com/rkonno1123-creator/bougu-check-app/internal/session"
	"github.com/rkonno1123-creator/bougu-check-app/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sess := session.New()
	h := NewHandler(sess, st, excel.DefaultLayout())

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, sess
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode failed: %v (body=%s)", err, w.Body.String())
	}
}

// testWorkbook 防護服シートだけの集計表（10/6 基準値10、10/7 基準値5）
func testWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "防護服"); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	f.SetCellValue("防護服", "A7", "2025/10/06")
	f.SetCellValue("防護服", "D7", 10)
	f.SetCellValue("防護服", "A8", "2025/10/07")
	f.SetCellValue("防護服", "D8", 5)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func doImport(t *testing.T, router *gin.Engine, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "集計表.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write payload failed: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestStatusInitial 初期状態は未初期化・業者3社
func TestStatusInitial(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", w.Code)
	}
	var resp StatusResponse
	decode(t, w, &resp)
	if resp.Initialized || resp.Ready {
		t.Errorf("initialized/ready = %v/%v, want false/false", resp.Initialized, resp.Ready)
	}
	if resp.VendorCount != 3 {
		t.Errorf("vendorCount = %d, want 3", resp.VendorCount)
	}
}

// TestImportFlow インポート→週→入力→集計の一連の流れ
func TestImportFlow(t *testing.T) {
	router, sess := newTestRouter(t)

	// インポート
	w := doImport(t, router, testWorkbook(t))
	if w.Code != http.StatusOK {
		t.Fatalf("import code = %d, body=%s", w.Code, w.Body.String())
	}
	var imp ImportResponse
	decode(t, w, &imp)
	if imp.Dates != 2 {
		t.Errorf("dates = %d, want 2", imp.Dates)
	}
	if imp.Weeks != 1 {
		t.Errorf("weeks = %d, want 1", imp.Weeks)
	}
	if len(imp.MissingSheets) != 2 {
		t.Errorf("missingSheets = %v, want 2 entries", imp.MissingSheets)
	}

	// 週リスト
	w = doJSON(t, router, http.MethodGet, "/api/weeks", nil)
	var weeksResp struct {
		Weeks []struct {
			Start     string   `json:"start"`
			DataDates []string `json:"dataDates"`
		} `json:"weeks"`
	}
	decode(t, w, &weeksResp)
	if len(weeksResp.Weeks) != 1 || weeksResp.Weeks[0].Start != "2025-10-06" {
		t.Fatalf("weeks = %+v, want 1 week starting 2025-10-06", weeksResp.Weeks)
	}

	// 2業者が4と6を入力 → 10/6 防護服は一致
	vendors := sess.Vendors()
	for i, val := range []string{"4", "6"} {
		w = doJSON(t, router, http.MethodPut, "/api/inputs", SetInputRequest{
			Date: "2025-10-06", VendorID: vendors[i].ID, Item: "bogoufuku", Value: val,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("set input code = %d, body=%s", w.Code, w.Body.String())
		}
	}

	// 集計
	w = doJSON(t, router, http.MethodGet, "/api/summary", nil)
	var sum struct {
		Stats struct {
			OK        int `json:"ok"`
			Warning   int `json:"warning"`
			Unchecked int `json:"unchecked"`
		} `json:"stats"`
		Rows []struct {
			Date  string `json:"date"`
			Cells []struct {
				Item   string `json:"item"`
				Total  int    `json:"total"`
				Status string `json:"status"`
			} `json:"cells"`
		} `json:"rows"`
	}
	decode(t, w, &sum)
	if sum.Stats.OK != 1 {
		t.Errorf("stats.ok = %d, want 1", sum.Stats.OK)
	}
	if sum.Stats.Unchecked != 5 {
		t.Errorf("stats.unchecked = %d, want 5", sum.Stats.Unchecked)
	}
	if len(sum.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(sum.Rows))
	}
	first := sum.Rows[0]
	if first.Date != "2025-10-06" || first.Cells[0].Total != 10 || first.Cells[0].Status != "ok" {
		t.Errorf("row[0] = %+v, want 10/6 bogoufuku total 10 ok", first)
	}
}

// TestImportBadFile 壊れたファイルは400で、既存状態は変わらない
func TestImportBadFile(t *testing.T) {
	router, sess := newTestRouter(t)

	// 先に正常なデータを入れておく
	if w := doImport(t, router, testWorkbook(t)); w.Code != http.StatusOK {
		t.Fatalf("first import code = %d", w.Code)
	}
	before := sess.Reference()

	w := doImport(t, router, []byte("Excelではないデータ"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("import code = %d, want 400", w.Code)
	}
	if sess.Reference() != before {
		t.Error("失敗したインポートで基準データが変わった")
	}
}

// TestSetInputCoercion 数値でない入力は0、空文字は未入力
func TestSetInputCoercion(t *testing.T) {
	router, sess := newTestRouter(t)
	v := sess.Vendors()[0]

	w := doJSON(t, router, http.MethodPut, "/api/inputs", SetInputRequest{
		Date: "2025-10-06", VendorID: v.ID, Item: "tebukuro", Value: "abc",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Value *int `json:"value"`
	}
	decode(t, w, &resp)
	if resp.Value == nil || *resp.Value != 0 {
		t.Errorf("value = %v, want 0", resp.Value)
	}

	// 空文字で未入力に戻す
	w = doJSON(t, router, http.MethodPut, "/api/inputs", SetInputRequest{
		Date: "2025-10-06", VendorID: v.ID, Item: "tebukuro", Value: "",
	})
	decode(t, w, &resp)
	if resp.Value != nil {
		t.Errorf("value = %v, want null", *resp.Value)
	}

	// 不明な項目は400
	w = doJSON(t, router, http.MethodPut, "/api/inputs", SetInputRequest{
		Date: "2025-10-06", VendorID: v.ID, Item: "helmet", Value: "1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400 for unknown item", w.Code)
	}
}

// TestGetInputs 3項目の入力値（未入力はnull）
func TestGetInputs(t *testing.T) {
	router, sess := newTestRouter(t)
	v := sess.Vendors()[0]

	doJSON(t, router, http.MethodPut, "/api/inputs", SetInputRequest{
		Date: "2025-10-06", VendorID: v.ID, Item: "bogoufuku", Value: "4",
	})

	w := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/inputs?date=2025-10-06&vendorId=%s", v.ID), nil)
	var resp struct {
		Values map[string]*int `json:"values"`
	}
	decode(t, w, &resp)
	if resp.Values["bogoufuku"] == nil || *resp.Values["bogoufuku"] != 4 {
		t.Errorf("bogoufuku = %v, want 4", resp.Values["bogoufuku"])
	}
	if resp.Values["tebukuro"] != nil {
		t.Errorf("tebukuro = %v, want null", *resp.Values["tebukuro"])
	}
}

// TestVendorEndpoints 業者の追加・改名・削除と最終1社ガード
func TestVendorEndpoints(t *testing.T) {
	router, sess := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/vendors", VendorRequest{Name: "丸和建設"})
	if w.Code != http.StatusOK {
		t.Fatalf("add code = %d", w.Code)
	}
	var added struct {
		Vendor struct {
			ID string `json:"id"`
		} `json:"vendor"`
	}
	decode(t, w, &added)

	// 空の業者名は追加できない
	if w := doJSON(t, router, http.MethodPost, "/api/vendors", VendorRequest{Name: "  "}); w.Code != http.StatusBadRequest {
		t.Errorf("add empty name code = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPatch, "/api/vendors/"+added.Vendor.ID, VendorRequest{Name: "丸和工業"})
	if w.Code != http.StatusOK {
		t.Errorf("rename code = %d, want 200", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/vendors/"+added.Vendor.ID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete code = %d, want 200", w.Code)
	}

	// 最後の1社まで削除すると409
	vendors := sess.Vendors()
	for i, v := range vendors {
		w = doJSON(t, router, http.MethodDelete, "/api/vendors/"+v.ID, nil)
		if i < len(vendors)-1 && w.Code != http.StatusOK {
			t.Fatalf("delete code = %d, want 200", w.Code)
		}
		if i == len(vendors)-1 && w.Code != http.StatusConflict {
			t.Errorf("last delete code = %d, want 409", w.Code)
		}
	}
}

// TestExportPrint 印刷HTMLを返す
func TestExportPrint(t *testing.T) {
	router, _ := newTestRouter(t)

	// 基準データなしは400
	if w := doJSON(t, router, http.MethodGet, "/api/export/print", nil); w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400 without dataset", w.Code)
	}

	doImport(t, router, testWorkbook(t))

	w := doJSON(t, router, http.MethodGet, "/api/export/print", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %s, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "防護具照合結果") {
		t.Error("print HTML missing title")
	}
}

// TestExportWorkbook Excelダウンロード
func TestExportWorkbook(t *testing.T) {
	router, _ := newTestRouter(t)
	doImport(t, router, testWorkbook(t))

	w := doJSON(t, router, http.MethodGet, "/api/export/xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("照合結果", "A1"); v != "防護具照合結果" {
		t.Errorf("A1 = %q, want タイトル", v)
	}
}

// TestReset 全消去で初期状態へ戻り、復元データも消える
func TestReset(t *testing.T) {
	router, sess := newTestRouter(t)
	doImport(t, router, testWorkbook(t))

	w := doJSON(t, router, http.MethodPost, "/api/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset code = %d, want 200", w.Code)
	}
	if sess.Reference() != nil {
		t.Error("Reset後も基準データが残っている")
	}
	if len(sess.Vendors()) != 3 {
		t.Errorf("業者数 = %d, want 3", len(sess.Vendors()))
	}
}
