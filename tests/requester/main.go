package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/v1"

var historyQueries = []string{
	"",
	"sort_by=Total&sort_dir=Descending",
	"status_filter=CONFIRMED",
	"search=sku-00",
	"page=2",
	// Неканонический запрос, сервис должен ответить редиректом
	"page=1&search=+SKU-0001+",
}

func main() {
	client := &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(client) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func doRequest(client *http.Client) {
	var url string
	if rand.Intn(2) == 0 {
		url = fmt.Sprintf("%s/orders/%d", baseURL, 1+rand.Intn(200))
	} else {
		url = fmt.Sprintf("%s/customers/%d/orders?%s", baseURL, 1+rand.Intn(20), historyQueries[rand.Intn(len(historyQueries))])
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
	} else {
		fmt.Println("GET", url, "->", resp.Status)
		resp.Body.Close()
	}
}
