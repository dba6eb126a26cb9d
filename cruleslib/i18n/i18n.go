/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var languageMap = map[string]language.Tag{"en": language.English, "zh": language.Chinese}

const (
	MsgDependentBase        = "In a class template with a dependent base, any name that may be found in that dependent base shall be referred to using a qualified-id or this->.\nName: %s\nDependent base: %s"
	MsgAutosarDependentBase = "Names that may be found in a dependent base of a class template shall be referred to using a qualified-id or this->.\nName: %s\nDependent base: %s"
	MsgCompliant            = "Name %s does not rely on a dependent base"
	MsgStartTask            = "Start analyzing for %s (%v/%v)"
	MsgFinishTask           = "Analysis of %s completed (%s, %v/%v) [%s]"
	MsgUseCPU               = "Use %d CPU(s)"
	MsgCppLines             = "%d lines of C++ code"
	MsgExported             = "Exported scope dumps for %d of %d translation units"
	MsgResultsCount         = "%d issues found"
	MsgInterrupted          = "Ctrl C Pressed. Stop analysis"
	MsgStartExport          = "Start exporting scope dumps"
	MsgStartAnalyze         = "Start analyzing C++ files"
	MsgAnalyzeDone          = "Analyzing C++ files completed [%s]"
	MsgTotalTime            = "Total time for analysis: %s"
)

var zh = map[string]string{
	MsgDependentBase:        "在具有依赖基类的类模板中，任何可能在该依赖基类中找到的名称都应使用限定标识或 this-> 引用。\n名称：%s\n依赖基类：%s",
	MsgAutosarDependentBase: "类模板中可能在依赖基类中找到的名称应使用限定标识或 this-> 引用。\n名称：%s\n依赖基类：%s",
	MsgCompliant:            "名称 %s 不依赖于依赖基类",
	MsgStartTask:            "开始分析 %s (%v/%v)",
	MsgFinishTask:           "%s 分析完成 (%s, %v/%v) [%s]",
	MsgUseCPU:               "使用 %d 个 CPU",
	MsgCppLines:             "%d 行 C++ 代码",
	MsgExported:             "已为 %d/%d 个翻译单元导出作用域数据",
	MsgResultsCount:         "发现 %d 个问题",
	MsgInterrupted:          "已按下 Ctrl C，停止分析",
	MsgStartExport:          "开始导出作用域数据",
	MsgStartAnalyze:         "开始分析 C++ 文件",
	MsgAnalyzeDone:          "C++ 文件分析完成 [%s]",
	MsgTotalTime:            "分析总耗时：%s",
}

func init() {
	for key, msg := range zh {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			panic(err)
		}
	}
}

func GetPrinter(lang string) *message.Printer {
	langTag, exist := languageMap[lang]
	if !exist {
		langTag = languageMap["zh"]
	}
	return message.NewPrinter(langTag)
}
