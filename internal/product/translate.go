package product

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/model"
)

// translateResult 把记录的展示文案翻译到目标语言
// 始终在深拷贝上改写，入参记录保持未翻译状态
func (s *Service) translateResult(ctx context.Context, res *model.Result, lang string) *model.Result {
	if res == nil || res.Data == nil {
		return res
	}
	if lang == "" || strings.EqualFold(lang, "zh") {
		return res
	}

	clone := res.Clone()
	d := clone.Data

	// 先收集所有待翻译文案，再并发翻译，最后按位写回
	var jobs []translateJob

	jobs = append(jobs, translateJob{
		text:  d.ProductName,
		apply: func(t string) { d.ProductName = t },
	})

	for gi := range d.PropList {
		group := &d.PropList[gi]
		jobs = append(jobs, translateJob{
			text:  group.PropName,
			apply: func(t string) { group.PropName = t },
		})
		for vi := range group.PropList {
			value := &group.PropList[vi]
			jobs = append(jobs, translateJob{
				text:  value.PName,
				apply: func(t string) { value.PName = t },
			})
		}
	}

	// 淘宝的 properties_name 是 "组id:值id:组名:值名" 的组合串，整串送翻译
	// 会把数字键一起翻掉，且译文未必跟属性组的译文一致，所以译完属性组后
	// 用译文重建；微店的 properties_name 就是纯展示文案，直接翻译
	rebuildSkuNames := d.ProductPlatform == model.PlatformTaobao || d.ProductPlatform == model.PlatformTmall

	if !rebuildSkuNames {
		skuKeys := make([]string, 0, len(d.SkuList))
		for key := range d.SkuList {
			skuKeys = append(skuKeys, key)
		}
		for _, key := range skuKeys {
			key := key
			jobs = append(jobs, translateJob{
				text: d.SkuList[key].PropertiesName,
				apply: func(t string) {
					sku := d.SkuList[key]
					sku.PropertiesName = t
					d.SkuList[key] = sku
				},
			})
		}
	}

	s.runTranslations(ctx, jobs, lang)

	if rebuildSkuNames {
		rebuildPropertiesNames(d)
	}

	// 翻译后的属性组重建 props_list_origin，键不变、展示名换成译文
	if len(d.PropList) > 0 {
		rebuilt := make(map[string]string, len(d.PropsListOrigin))
		for _, group := range d.PropList {
			for _, value := range group.PropList {
				rebuilt[value.PValue] = group.PropName + ":" + value.PName
			}
		}
		for k, v := range d.PropsListOrigin {
			if _, ok := rebuilt[k]; !ok {
				rebuilt[k] = v
			}
		}
		d.PropsListOrigin = rebuilt
	}

	return clone
}

// rebuildPropertiesNames 按译后的属性组重建每个 SKU 的 properties_name
// 组合键本身不动，只换人读的部分，保证跟 prop_list 的译文逐项一致
func rebuildPropertiesNames(d *model.Product) {
	names := make(map[string]string)
	for _, group := range d.PropList {
		for _, value := range group.PropList {
			names[value.PValue] = group.PropName + ":" + value.PName
		}
	}

	for key, sku := range d.SkuList {
		if sku.Properties == "" {
			continue
		}
		tokens := strings.Split(sku.Properties, ";")
		rebuilt := make([]string, 0, len(tokens))
		complete := true
		for _, token := range tokens {
			name, ok := names[token]
			if !ok {
				complete = false
				break
			}
			rebuilt = append(rebuilt, token+":"+name)
		}
		// 缺属性的 SKU 保留原文，不生成半套译文
		if complete {
			sku.PropertiesName = strings.Join(rebuilt, ";")
			d.SkuList[key] = sku
		}
	}
}

type translateJob struct {
	text  string
	apply func(translated string)
}

// runTranslations 并发执行翻译任务
// 单条失败回退原文，整体流程不中断，所以不用随错取消的编排
func (s *Service) runTranslations(ctx context.Context, jobs []translateJob, lang string) {
	results := make([]string, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		if strings.TrimSpace(job.text) == "" {
			results[i] = job.text
			continue
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			out, err := s.translator.Translate(ctx, text, lang)
			if err != nil || out == "" {
				s.logger.Debug("translation fell back to original text",
					zap.String("lang", lang))
				out = text
			}
			results[i] = out
		}(i, job.text)
	}
	wg.Wait()

	for i, job := range jobs {
		job.apply(results[i])
	}
}
