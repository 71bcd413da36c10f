// Command-line stress test that fires concurrent comment appends at a single
// post and verifies none are lost, producing CSV + HTML reports.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"personalblog/config"
)

const baseURL = "http://127.0.0.1:8080/api"

var client = &http.Client{Timeout: 10 * time.Second}

// commentResult 记录单次评论请求的结果，方便折叠到报告内。
type commentResult struct {
	Worker     int
	Body       string
	StatusCode int
	ErrMessage string
	Timestamp  time.Time
}

// ======================= 基本 HTTP helper =======================

// doJSON serializes a JSON body and sends the request with optional bearer token.
func doJSON(method, url string, body any, token string) (int, []byte, error) {
	var buf []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = b
	}
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(buf))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

// ======================= 注册 / 登录 / 发帖 Helpers =======================

// registerUser ensures the test account exists (idempotent).
func registerUser(name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	status, _, err := doJSON("POST", baseURL+"/register", body, "")
	if err != nil {
		return err
	}
	if status != 200 && status != 400 { // 400 表示已存在（可接受）
		return fmt.Errorf("register status %d", status)
	}
	return nil
}

// loginUser returns the bearer token and user id for the account.
func loginUser(email, password string) (string, uint64, error) {
	body := map[string]string{"email": email, "password": password}
	status, data, err := doJSON("POST", baseURL+"/login", body, "")
	if err != nil {
		return "", 0, err
	}
	if status != 200 {
		return "", 0, fmt.Errorf("login status %d body=%s", status, string(data))
	}
	var res struct {
		Token string `json:"token"`
		User  struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return "", 0, err
	}
	return res.Token, res.User.ID, nil
}

// createPost creates the post that all workers will comment on.
func createPost(token, title, description string) (uint64, error) {
	body := map[string]string{"title": title, "description": description}
	status, data, err := doJSON("POST", baseURL+"/posts", body, token)
	if err != nil {
		return 0, err
	}
	if status != 200 {
		return 0, fmt.Errorf("create post status %d body=%s", status, string(data))
	}
	var res struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return 0, err
	}
	return res.ID, nil
}

// addComment posts a single comment and reports the status.
func addComment(token string, postID uint64, body string) (int, error) {
	payload := map[string]string{"body": body}
	url := fmt.Sprintf("%s/posts/%d/comments", baseURL, postID)
	status, _, err := doJSON("POST", url, payload, token)
	return status, err
}

// fetchCommentCount reads the post back and counts its comments.
func fetchCommentCount(postID uint64) (int, error) {
	status, data, err := doJSON("GET", fmt.Sprintf("%s/posts/%d", baseURL, postID), nil, "")
	if err != nil {
		return 0, err
	}
	if status != 200 {
		return 0, fmt.Errorf("get post status %d", status)
	}
	var res struct {
		Comments []json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return 0, err
	}
	return len(res.Comments), nil
}

// ======================= 并发追加测试与报告生成 =======================

// concurrentCommentTest appends totalComments comments from maxConcurrent
// workers and verifies that the post ends up with every one of them.
// 任何一次丢失都意味着追加不是原子的。
func concurrentCommentTest(email, password string, totalComments, maxConcurrent int, outCSV, outHTML string) error {
	if err := registerUser("Stress Bot", email, password); err != nil {
		return fmt.Errorf("register error: %v", err)
	}
	token, _, err := loginUser(email, password)
	if err != nil {
		return fmt.Errorf("login error: %v", err)
	}
	postID, err := createPost(token, "stress target", "concurrent append check")
	if err != nil {
		return fmt.Errorf("create post error: %v", err)
	}

	jobs := make(chan int, totalComments)
	results := make(chan commentResult, totalComments)

	var wg sync.WaitGroup
	worker := func(id int) {
		defer wg.Done()
		for n := range jobs {
			body := fmt.Sprintf("comment-%d", n)
			status, err := addComment(token, postID, body)
			res := commentResult{Worker: id, Body: body, StatusCode: status, Timestamp: time.Now()}
			if err != nil {
				res.ErrMessage = err.Error()
			}
			results <- res
		}
	}

	workers := maxConcurrent
	if workers < 1 {
		workers = 10
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker(i)
	}
	for n := 0; n < totalComments; n++ {
		jobs <- n
	}
	close(jobs)
	wg.Wait()
	close(results)

	// 写 CSV 报告
	csvFile, err := os.Create(outCSV)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	defer csvWriter.Flush()
	_ = csvWriter.Write([]string{"Worker", "Body", "StatusCode", "ErrMessage", "Timestamp"})

	var allResults []commentResult
	succeeded := 0
	for r := range results {
		if r.StatusCode == 201 {
			succeeded++
		}
		_ = csvWriter.Write([]string{
			fmt.Sprintf("%d", r.Worker), r.Body, fmt.Sprintf("%d", r.StatusCode),
			r.ErrMessage, r.Timestamp.Format(time.RFC3339),
		})
		allResults = append(allResults, r)
	}
	csvWriter.Flush()

	if err := writeHTMLReport(outHTML, allResults); err != nil {
		log.Printf("write HTML report error: %v", err)
	}

	// 核心校验：成功提交的评论一条都不能丢
	count, err := fetchCommentCount(postID)
	if err != nil {
		return err
	}
	if count != succeeded {
		return fmt.Errorf("lost comments: %d accepted but only %d stored", succeeded, count)
	}
	log.Printf("comment append check passed: %d/%d comments stored", count, totalComments)
	return nil
}

// writeHTMLReport renders a basic table so failures are easy to eyeball.
func writeHTMLReport(path string, results []commentResult) error {
	const tpl = `
<!doctype html>
<html>
<head><meta charset="utf-8"><title>Comment Append Test Report</title>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align:left }
th { background: #f4f4f4; }
.success { color: green; }
.fail { color: red; }
</style>
</head>
<body>
<h2>Comment Append Test Report ({{ .GeneratedAt }})</h2>
<table>
<thead><tr><th>Worker</th><th>Body</th><th>StatusCode</th><th>Error</th><th>Timestamp</th></tr></thead>
<tbody>
{{ range .Rows }}
<tr>
<td>{{ .Worker }}</td>
<td>{{ .Body }}</td>
<td>{{ .StatusCode }}</td>
<td>{{ .ErrMessage }}</td>
<td>{{ .Timestamp }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>`

	data := struct {
		GeneratedAt string
		Rows        []commentResult
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rows:        results,
	}

	t, err := template.New("report").Parse(tpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// ======================= main =======================

func main() {
	rdb := initRedis()

	email := fmt.Sprintf("stress-%d@example.com", time.Now().UnixNano()%1000000)
	password := "StressPwd123!"
	totalComments := 50 // 并发追加的评论数量
	maxConcurrent := 10 // worker 数
	outCSV := "comment_report.csv"
	outHTML := "comment_report.html"

	start := time.Now()
	if err := concurrentCommentTest(email, password, totalComments, maxConcurrent, outCSV, outHTML); err != nil {
		log.Fatalf("concurrent comment test failed: %v", err)
	}
	elapsed := time.Since(start)
	log.Printf("concurrent test finished in %s, CSV=%s HTML=%s\n", elapsed.String(), outCSV, outHTML)

	// 打印 Redis 状态（feed 缓存键）
	keys, _ := rdb.Keys(rdb.Context(), "blog:*").Result()
	log.Printf("Redis keys after test: %v\n", keys)
	fmt.Println("All concurrent append tests completed successfully!")
}

// 初始化 Redis 以便检查 feed 缓存的失效情况
func initRedis() *redis.Client {
	cfg := config.Load("../../")
	return config.NewRedisClient(cfg.Redis)
}
